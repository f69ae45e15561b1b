package catalog

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

var testSchema = FieldSchema{
	IDField:     "KeywordID",
	EnNameField: "KeywordNamesEN",
	FrNameField: "KeywordNamesFR",
	IDFField:    "IDF",
}

const keywordsCSV = `GlobalID,KeywordID,KeywordNamesEN,KeywordNamesFR,IDF
g1,KW1,Quality assurance specialist,"[""Spécialiste en assurance qualité"",""Expert en assurance qualité""]",5.2
g2,KW2,Amazon Cloud,"[""Amazon Cloud""]",4.1
g3,KW3,Amazon EC2,"[""Amazon EC2""]",4.7
g4,KW4,Blockchain,Chaîne de blocs,3.9
`

func writeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "keywords.csv")
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
	return path
}

func TestLoadBuildsIndices(t *testing.T) {
	cat, err := Load(writeCSV(t, keywordsCSV), testSchema)
	require.NoError(t, err)

	// byId holds exactly the distinct ids, English names from the
	// un-exploded rows
	assert.Equal(t, []string{"KW1", "KW2", "KW3", "KW4"}, cat.IDs())
	names, ok := cat.Lookup("KW1")
	require.True(t, ok)
	assert.Equal(t, "Quality assurance specialist", names.English)

	_, ok = cat.Lookup("KW99")
	assert.False(t, ok)
}

func TestLoadExplodesFrenchNames(t *testing.T) {
	cat, err := Load(writeCSV(t, keywordsCSV), testSchema)
	require.NoError(t, err)

	// KW1 has two French variants and expands into two entries sharing
	// id, English name and IDF
	var kw1 []Entry
	for _, e := range cat.Entries() {
		if e.ID == "KW1" {
			kw1 = append(kw1, e)
		}
	}
	require.Len(t, kw1, 2)
	assert.Equal(t, kw1[0].EnglishName, kw1[1].EnglishName)
	assert.Equal(t, kw1[0].IDF, kw1[1].IDF)
	assert.NotEqual(t, kw1[0].FrenchName, kw1[1].FrenchName)

	names, _ := cat.Lookup("KW1")
	assert.Equal(t, []string{"Spécialiste en assurance qualité", "Expert en assurance qualité"}, names.French)
}

func TestLoadAcceptsBareFrenchName(t *testing.T) {
	cat, err := Load(writeCSV(t, keywordsCSV), testSchema)
	require.NoError(t, err)

	names, ok := cat.Lookup("KW4")
	require.True(t, ok)
	assert.Equal(t, []string{"Chaîne de blocs"}, names.French)
}

func TestLoadMissingFile(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "absent.csv"), testSchema)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadMissingColumn(t *testing.T) {
	csv := "KeywordID,KeywordNamesEN,IDF\nKW1,Something,1.0\n"
	_, err := Load(writeCSV(t, csv), testSchema)
	require.ErrorIs(t, err, ErrLoad)
	assert.Contains(t, err.Error(), "KeywordNamesFR")
}

func TestLoadMalformedFrenchCell(t *testing.T) {
	csv := "KeywordID,KeywordNamesEN,KeywordNamesFR,IDF\n" +
		`KW1,Something,"[""unterminated",1.0` + "\n"
	_, err := Load(writeCSV(t, csv), testSchema)
	assert.ErrorIs(t, err, ErrParse)
}

func TestLoadInvalidIDF(t *testing.T) {
	csv := "KeywordID,KeywordNamesEN,KeywordNamesFR,IDF\n" +
		`KW1,Something,"[""Quelque chose""]",abc` + "\n"
	_, err := Load(writeCSV(t, csv), testSchema)
	assert.ErrorIs(t, err, ErrLoad)
}

func TestLoadXLSX(t *testing.T) {
	path := filepath.Join(t.TempDir(), "keywords.xlsx")

	f := excelize.NewFile()
	rows := [][]interface{}{
		{"KeywordID", "KeywordNamesEN", "KeywordNamesFR", "IDF"},
		{"KW1", "Amazon Cloud", `["Amazon Cloud","Nuage Amazon"]`, "4.1"},
	}
	for i, row := range rows {
		cell, err := excelize.CoordinatesToCellName(1, i+1)
		require.NoError(t, err)
		require.NoError(t, f.SetSheetRow("Sheet1", cell, &row))
	}
	require.NoError(t, f.SaveAs(path))

	cat, err := Load(path, testSchema)
	require.NoError(t, err)
	assert.Equal(t, 2, cat.Len())
	names, ok := cat.Lookup("KW1")
	require.True(t, ok)
	assert.Equal(t, []string{"Amazon Cloud", "Nuage Amazon"}, names.French)
}
