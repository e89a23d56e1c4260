package scrape

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"net/url"
	"regexp"
	"strings"
	"sync"

	"github.com/PuerkitoBio/goquery"
	"github.com/brequin/brequin/tracker/course"
	"github.com/brequin/brequin/tracker/db"
	"github.com/brequin/brequin/tracker/util"
	"github.com/hashicorp/go-retryablehttp"
	"golang.org/x/net/html"
	"golang.org/x/sync/errgroup"
)

var catalogNumberRe = regexp.MustCompile(`(\d+)(\.\d+)?$`)

type Scraper struct {
	BaseURL     string
	Client      *retryablehttp.Client
	Concurrency int
}

func New(baseURL string, retries, concurrency int) *Scraper {
	client := retryablehttp.NewClient()
	client.Logger = log.New(io.Discard, "", 0)
	client.RetryMax = retries

	if concurrency < 1 {
		concurrency = 1
	}
	return &Scraper{BaseURL: baseURL, Client: client, Concurrency: concurrency}
}

func (s *Scraper) departmentUrl(subjectAreaCode string) (string, error) {
	u, err := url.Parse(s.BaseURL)
	if err != nil {
		return "", err
	}
	query := u.Query()
	query.Set("subject", subjectAreaCode)
	u.RawQuery = query.Encode()
	return u.String(), nil
}

func (s *Scraper) ScrapeDepartment(ctx context.Context, subjectAreaCode string) ([]db.CourseDetails, error) {
	departmentUrl, err := s.departmentUrl(subjectAreaCode)
	if err != nil {
		return nil, err
	}

	request, err := retryablehttp.NewRequestWithContext(ctx, http.MethodGet, departmentUrl, nil)
	if err != nil {
		return nil, err
	}

	response, err := s.Client.Do(request)
	if err != nil {
		return nil, err
	}
	defer response.Body.Close()

	if response.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("catalog page for %v: %v", subjectAreaCode, response.Status)
	}

	return ParseDepartmentPage(subjectAreaCode, response.Body)
}

// ScrapeDepartments scrapes departments concurrently. A department that fails
// is logged and left out; the joined errors are returned alongside whatever
// was scraped.
func (s *Scraper) ScrapeDepartments(ctx context.Context, subjectAreaCodes []string) ([]db.CourseDetails, error) {
	results := make([][]db.CourseDetails, len(subjectAreaCodes))

	var mu sync.Mutex
	var errs []error

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(s.Concurrency)
	for i, subjectAreaCode := range subjectAreaCodes {
		i, subjectAreaCode := i, subjectAreaCode
		eg.Go(func() error {
			coursesDetails, err := s.ScrapeDepartment(egCtx, subjectAreaCode)
			if err != nil {
				util.Log.WithField("department", subjectAreaCode).Warn("Unable to scrape catalog: ", err)
				mu.Lock()
				errs = append(errs, fmt.Errorf("%v: %w", subjectAreaCode, err))
				mu.Unlock()
				return nil
			}
			util.Log.WithField("department", subjectAreaCode).Debugf("Scraped %d courses", len(coursesDetails))
			results[i] = coursesDetails
			return nil
		})
	}
	eg.Wait()

	var coursesDetails []db.CourseDetails
	for _, result := range results {
		coursesDetails = append(coursesDetails, result...)
	}
	return coursesDetails, errors.Join(errs...)
}

// ParseDepartmentPage reads the catalog table of one department. Each row
// holds subject, number, title, distributives, terms offered and an optional
// description. Rows of other subjects are skipped.
func ParseDepartmentPage(subjectAreaCode string, r io.Reader) ([]db.CourseDetails, error) {
	document, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, err
	}

	var coursesDetails []db.CourseDetails
	document.Find("table tr").Each(func(i int, row *goquery.Selection) {
		cells := row.Find("td")
		if cells.Length() < 3 {
			return
		}

		cell := func(n int) string {
			if n >= cells.Length() {
				return ""
			}
			return strings.Join(strings.Fields(cells.Eq(n).Text()), " ")
		}

		subject := strings.ToUpper(cell(0))
		if subject != "" && subject != subjectAreaCode {
			return
		}

		catalogNumber, ok := parseCatalogNumber(cell(1))
		if !ok {
			util.Log.WithField("department", subjectAreaCode).Debug("Unable to determine catalog number: ", cell(1))
			return
		}

		title, err := cells.Eq(2).Html()
		if err != nil {
			util.Log.WithField("department", subjectAreaCode).Debug("Unable to determine course title")
			return
		}

		coursesDetails = append(coursesDetails, db.CourseDetails{
			SubjectAreaCode: subjectAreaCode,
			CatalogNumber:   catalogNumber,
			Name:            strings.TrimSpace(html.UnescapeString(title)),
			Distributives:   cell(3),
			TermsOffered:    cell(4),
			Description:     cell(5),
		})
	})

	return coursesDetails, nil
}

// parseCatalogNumber pads the integer part of a catalog number ("COSC 10.2"
// becomes "010.2").
func parseCatalogNumber(s string) (string, bool) {
	submatches := catalogNumberRe.FindStringSubmatch(strings.TrimSpace(s))
	if submatches == nil {
		return "", false
	}
	return course.PadNumber(strings.TrimLeft(submatches[1], "0")) + submatches[2], true
}
