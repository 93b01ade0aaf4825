package outcomes

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// writeOutcomeCSV writes a CSV fixture using the CMS header names and
// returns its path.
func writeOutcomeCSV(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "outcome-of-care-measures.csv")
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("write fixture CSV: %v", err)
	}
	return path
}

const outcomeCSV = `Provider Number,Hospital Name,Address,City,State,ZIP Code,Hospital 30-Day Death (Mortality) Rates from Heart Attack,Hospital 30-Day Death (Mortality) Rates from Heart Failure,Hospital 30-Day Death (Mortality) Rates from Pneumonia
450001,GULF COAST MEDICAL,100 MAIN ST,HOUSTON,TX,77001,10.0,8.1,Not Available
450002,"AUSTIN GENERAL, WEST CAMPUS",200 OAK AVE,AUSTIN,TX,78701,10.0,9.4,Not Available
450003,EL PASO REGIONAL,300 ELM ST,EL PASO,TX,79901,9.0,Not Available,Not Available
210001,CHESAPEAKE MEMORIAL,400 BAY RD,BALTIMORE,MD,21201,12.2,Not Available,10.5
210002,NO RATES HOSPITAL,500 PINE LN,ANNAPOLIS,MD,21401,Not Available,Not Available,Not Available
`

func TestCSVReader_ReadAll(t *testing.T) {
	path := writeOutcomeCSV(t, outcomeCSV)

	reader, err := NewCSVReader(path, ReaderOptions{})
	require.NoError(t, err)
	defer reader.Close()

	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 5)

	assert.Equal(t, "TX", rows[0].State)
	assert.Equal(t, "GULF COAST MEDICAL", rows[0].Hospital)
	require.NotNil(t, rows[0].HeartAttackRate)
	assert.Equal(t, 10.0, *rows[0].HeartAttackRate)
	require.NotNil(t, rows[0].HeartFailureRate)
	assert.Equal(t, 8.1, *rows[0].HeartFailureRate)
	assert.Nil(t, rows[0].PneumoniaRate)

	// Quoted name with embedded comma survives intact.
	assert.Equal(t, "AUSTIN GENERAL, WEST CAMPUS", rows[1].Hospital)

	// All-sentinel row still comes back as a RawRecord; BuildTable drops it.
	assert.Nil(t, rows[4].HeartAttackRate)
	assert.Nil(t, rows[4].HeartFailureRate)
	assert.Nil(t, rows[4].PneumoniaRate)
}

func TestCSVReader_BOMHandling(t *testing.T) {
	path := writeOutcomeCSV(t, "\xEF\xBB\xBF"+outcomeCSV)

	reader, err := NewCSVReader(path, ReaderOptions{})
	require.NoError(t, err)
	defer reader.Close()

	rows, err := reader.ReadAll()
	require.NoError(t, err)
	assert.Len(t, rows, 5)
}

func TestCSVReader_CustomColumnsAndSentinel(t *testing.T) {
	content := `st,name,ha,hf,pn
TX,CUSTOM HOSPITAL,10.5,N/A,11.2
`
	path := writeOutcomeCSV(t, content)

	reader, err := NewCSVReader(path, ReaderOptions{
		Columns: Columns{
			State:        "st",
			Hospital:     "name",
			HeartAttack:  "ha",
			HeartFailure: "hf",
			Pneumonia:    "pn",
		},
		NAToken: "N/A",
	})
	require.NoError(t, err)
	defer reader.Close()

	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)

	assert.Equal(t, "CUSTOM HOSPITAL", rows[0].Hospital)
	require.NotNil(t, rows[0].HeartAttackRate)
	assert.Equal(t, 10.5, *rows[0].HeartAttackRate)
	assert.Nil(t, rows[0].HeartFailureRate)
	require.NotNil(t, rows[0].PneumoniaRate)
	assert.Equal(t, 11.2, *rows[0].PneumoniaRate)
}

func TestCSVReader_UnparseableRateIsNil(t *testing.T) {
	content := `State,Hospital Name,Hospital 30-Day Death (Mortality) Rates from Heart Attack,Hospital 30-Day Death (Mortality) Rates from Heart Failure,Hospital 30-Day Death (Mortality) Rates from Pneumonia
TX,GARBLED HOSPITAL,12..3,8.0,9.0
`
	path := writeOutcomeCSV(t, content)

	reader, err := NewCSVReader(path, ReaderOptions{})
	require.NoError(t, err)
	defer reader.Close()

	rows, err := reader.ReadAll()
	require.NoError(t, err)
	require.Len(t, rows, 1)
	assert.Nil(t, rows[0].HeartAttackRate)
	require.NotNil(t, rows[0].HeartFailureRate)
}

func TestCSVReader_MissingColumn(t *testing.T) {
	content := `State,Hospital Name
TX,SOMEWHERE
`
	path := writeOutcomeCSV(t, content)

	_, err := NewCSVReader(path, ReaderOptions{})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "not found in header")
}

func TestCSVReader_MissingFile(t *testing.T) {
	_, err := NewCSVReader(filepath.Join(t.TempDir(), "nope.csv"), ReaderOptions{})
	require.Error(t, err)
}

// End-to-end: CSV through BuildTable to queries.
func TestCSVReader_ThroughTable(t *testing.T) {
	path := writeOutcomeCSV(t, outcomeCSV)

	reader, err := NewCSVReader(path, ReaderOptions{})
	require.NoError(t, err)
	defer reader.Close()

	rows, err := reader.ReadAll()
	require.NoError(t, err)

	table := BuildTable(rows)
	// TX: 3 heart attack + 2 heart failure; MD: 1 heart attack + 1 pneumonia.
	assert.Equal(t, 7, table.Len())

	hospital, ok, err := Best(table, "TX", "heart attack")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, "EL PASO REGIONAL", hospital)
}
