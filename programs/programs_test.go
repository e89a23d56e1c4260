package programs

import (
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const programData = `{
  "programs": {
    "MATH": {
      "name": "Mathematics",
      "types": {
        "major": {"code": "B.MATH", "requirements": "(@[MATH3,MATH8] & #4[MATH20-MATH89])"},
        "minor": {"code": "M.MATH"}
      }
    },
    "COSC": {
      "name": "Computer Science",
      "types": {
        "major": {"code": "B.COSC", "requirements": " (@[COSC1,COSC10] & #4[COSC30-COSC89]) "}
      }
    },
    "ASTR": {
      "name": "Astronomy",
      "types": {"minor": {"code": "M.ASTR"}}
    },
    "QSS": {
      "name": "Quantitative Social Science",
      "types": {"major": {"code": "QSS", "requirements": "(@[QSS30])"}}
    }
  }
}`

func TestParse(t *testing.T) {
	programs, err := Parse([]byte(programData))
	require.NoError(t, err)
	require.Len(t, programs, 3, "programs without a major are skipped")

	assert.Equal(t, "COSC", programs[0].Code)
	assert.Equal(t, "Computer Science", programs[0].Name)
	assert.Equal(t, "B.COSC", programs[0].MajorCode)
	assert.Equal(t, "COSC", programs[0].Department)
	assert.Equal(t, "(@[COSC1,COSC10] & #4[COSC30-COSC89])", programs[0].Requirements)

	assert.Equal(t, "MATH", programs[1].Code)
	assert.Equal(t, "QSS", programs[2].Department, "code without a dot falls back to the program key")
}

func TestParseRejects(t *testing.T) {
	_, err := Parse([]byte(`{"programs": `))
	assert.Error(t, err)

	_, err = Parse([]byte(`{"majors": {}}`))
	assert.Error(t, err)
}

func TestLoad(t *testing.T) {
	path := filepath.Join(t.TempDir(), "programs.json")
	require.NoError(t, os.WriteFile(path, []byte(programData), 0o644))

	programs, err := Load(path)
	require.NoError(t, err)
	assert.Len(t, programs, 3)

	_, err = Load(filepath.Join(t.TempDir(), "missing.json"))
	assert.Error(t, err)
}

func TestFind(t *testing.T) {
	programs, err := Parse([]byte(programData))
	require.NoError(t, err)

	program, err := Find(programs, "cosc")
	require.NoError(t, err)
	assert.Equal(t, "Computer Science", program.Name)

	_, err = Find(programs, "PHIL")
	assert.ErrorIs(t, err, ErrUnknownMajor)
}
