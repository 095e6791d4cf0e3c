package bank_test

import (
	"bytes"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/text/encoding/charmap"

	"github.com/mgirard/ledgerline/internal/ingest/bank"
	"github.com/mgirard/ledgerline/internal/staging"
)

func TestParser_ReleveCompte(t *testing.T) {
	csv := `Relevé de compte - 20-06-2024
Titulaire;ACME SARL
IBAN;FR76 3000 1007 9412 3456 7890 185

Date valeur;Libellé;Montant;Référence;IBAN
18-06-2024;PRLV EDF ENERGIE;-588,74;MV-2024-991;FR7630001007941234567890185
19-06-2024;VIR CLIENT DUPONT;1.250,00;MV-2024-992;FR7630001007941234567890185
`

	p := bank.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	first := records[0]
	assert.Equal(t, staging.KindMovement, first.Kind)
	assert.Equal(t, "MV-2024-991", first.ExternalID)
	assert.Equal(t, "2024-06-18", first.Field(staging.FieldValueDate))
	assert.Equal(t, "-588.74", first.Field(staging.FieldAmount))
	assert.Equal(t, "PRLV EDF ENERGIE", first.Field(staging.FieldLabel))
	assert.Equal(t, "FR7630001007941234567890185", first.Field(staging.FieldAccountKey))
	assert.Equal(t, 100, first.OverallConfidence())

	assert.Equal(t, "1250.00", records[1].Field(staging.FieldAmount))
}

func TestParser_PreambleIBAN(t *testing.T) {
	csv := `Titulaire;ACME SARL
IBAN;FR76 3000 1007 9412 3456 7890 185

Date;Libelle;Montant
18-06-2024;PRLV EDF;-10,00
`

	p := bank.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "FR7630001007941234567890185", records[0].Field(staging.FieldAccountKey))
}

func TestParser_CarteDebitCredit(t *testing.T) {
	csv := `Date;Date valeur;Libellé;Débit;Crédit;
16-12-2024;14-12-2024;PEAGE A89;64,00;;
31-12-2024;29-12-2024;REMBOURSEMENT;;25,00;
;;;;Page 1/2;
`

	p := bank.New()
	records, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)
	require.Len(t, records, 2)

	assert.Equal(t, "-64.00", records[0].Field(staging.FieldAmount))
	assert.Equal(t, "25.00", records[1].Field(staging.FieldAmount))
}

func TestParser_SyntheticReferenceIsStable(t *testing.T) {
	csv := `Date;Libelle;Montant
18-06-2024;PRLV EDF;-10,00
`

	p := bank.New()

	first, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	second, err := p.Parse(strings.NewReader(csv))
	require.NoError(t, err)

	require.Len(t, first, 1)
	require.Len(t, second, 1)
	assert.NotEmpty(t, first[0].ExternalID)
	assert.Equal(t, first[0].ExternalID, second[0].ExternalID)
}

func TestParser_Windows1252Encoding(t *testing.T) {
	utf8CSV := "Date valeur;Libellé;Montant;Référence;IBAN\n18-06-2024;CAFÉ DE LA GARE;-10,00;MV-1;FR7630001007941234567890185\n"

	encoder := charmap.Windows1252.NewEncoder()
	raw, err := encoder.Bytes([]byte(utf8CSV))
	require.NoError(t, err)

	p := bank.New()
	records, err := p.Parse(bytes.NewReader(raw))
	require.NoError(t, err)
	require.Len(t, records, 1)

	assert.Equal(t, "CAFÉ DE LA GARE", records[0].Field(staging.FieldLabel))
}

func TestParser_NoMatchingFormat(t *testing.T) {
	p := bank.New()
	_, err := p.Parse(strings.NewReader("foo;bar\n1;2\n"))
	require.Error(t, err)
	assert.Contains(t, err.Error(), "no matching bank export format")
}
