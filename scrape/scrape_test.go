package scrape

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const coscPage = `<html><body>
<table>
  <tr><th>Subject</th><th>Number</th><th>Title</th><th>Distribs</th><th>Terms</th></tr>
  <tr><td>COSC</td><td>1</td><td>Introduction to Programming &amp; Computation</td><td>TLA</td><td>24F, 25W</td><td>Basics.</td></tr>
  <tr><td>COSC</td><td>10</td><td>Problem Solving via Object-Oriented Programming</td><td>TAS</td><td>25W</td></tr>
  <tr><td>COSC</td><td>89.02</td><td>Topics in Computing</td><td></td><td></td></tr>
  <tr><td>MATH</td><td>3</td><td>Calculus</td><td>QDS</td><td>24F</td></tr>
  <tr><td>COSC</td><td>Independent study</td><td>Reading</td></tr>
</table>
</body></html>`

func TestParseDepartmentPage(t *testing.T) {
	coursesDetails, err := ParseDepartmentPage("COSC", strings.NewReader(coscPage))
	require.NoError(t, err)
	require.Len(t, coursesDetails, 3)

	assert.Equal(t, "001", coursesDetails[0].CatalogNumber)
	assert.Equal(t, "Introduction to Programming & Computation", coursesDetails[0].Name)
	assert.Equal(t, "TLA", coursesDetails[0].Distributives)
	assert.Equal(t, "24F, 25W", coursesDetails[0].TermsOffered)
	assert.Equal(t, "Basics.", coursesDetails[0].Description)

	assert.Equal(t, "010", coursesDetails[1].CatalogNumber)
	assert.Empty(t, coursesDetails[1].Description)
	assert.Equal(t, "089.02", coursesDetails[2].CatalogNumber)
	assert.Equal(t, "COSC", coursesDetails[2].SubjectAreaCode)
}

func TestParseCatalogNumber(t *testing.T) {
	for input, expected := range map[string]string{
		"1":         "001",
		"010":       "010",
		"COSC 10.2": "010.2",
		"1234":      "1234",
		"0":         "000",
	} {
		actual, ok := parseCatalogNumber(input)
		assert.True(t, ok, input)
		assert.Equal(t, expected, actual, input)
	}
	_, ok := parseCatalogNumber("seminar")
	assert.False(t, ok)
}

func TestScrapeDepartments(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		switch r.URL.Query().Get("subject") {
		case "COSC":
			fmt.Fprint(w, coscPage)
		case "MATH":
			fmt.Fprint(w, `<table><tr><td>MATH</td><td>3</td><td>Calculus</td><td>QDS</td></tr></table>`)
		default:
			http.NotFound(w, r)
		}
	}))
	defer server.Close()

	scraper := New(server.URL+"/catalog", 0, 2)
	coursesDetails, err := scraper.ScrapeDepartments(context.Background(), []string{"COSC", "MATH", "NONE"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "NONE")

	require.Len(t, coursesDetails, 4, "failed departments are left out")
	assert.Equal(t, "COSC", coursesDetails[0].SubjectAreaCode)
	assert.Equal(t, "MATH", coursesDetails[3].SubjectAreaCode)
	assert.Equal(t, int32(3), requests.Load())
}

func TestScrapeDepartmentRetries(t *testing.T) {
	var requests atomic.Int32
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if requests.Add(1) == 1 {
			w.WriteHeader(http.StatusServiceUnavailable)
			return
		}
		fmt.Fprint(w, coscPage)
	}))
	defer server.Close()

	scraper := New(server.URL, 2, 1)
	scraper.Client.RetryWaitMin = 0
	scraper.Client.RetryWaitMax = 0

	coursesDetails, err := scraper.ScrapeDepartment(context.Background(), "COSC")
	require.NoError(t, err)
	assert.Len(t, coursesDetails, 3)
	assert.Equal(t, int32(2), requests.Load())
}
