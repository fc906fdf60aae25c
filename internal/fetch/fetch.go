// Package fetch locates and downloads the current CMED price-table
// spreadsheet from the ANVISA publication page.
package fetch

import (
	"fmt"
	"io"
	"net/http"
	"net/url"
	"os"
	"path"
	"path/filepath"
	"strings"
	"time"

	"github.com/PuerkitoBio/goquery"

	"cmedimport/internal/config"
)

type Service struct {
	client  *http.Client
	pageURL string
	destDir string
}

func NewService(cfg config.Config) *Service {
	return &Service{
		client:  &http.Client{Timeout: time.Duration(cfg.HTTPTimeoutMs) * time.Millisecond},
		pageURL: cfg.CMEDPageURL,
		destDir: cfg.DownloadDir,
	}
}

// ListSpreadsheetLinks scrapes the publication page for spreadsheet links,
// document order preserved. The page layout is not a contract; anything
// that looks like an xls/xlsx/csv link is a candidate.
func (s *Service) ListSpreadsheetLinks() ([]string, error) {
	resp, err := s.client.Get(s.pageURL)
	if err != nil {
		return nil, fmt.Errorf("baixar página CMED: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("página CMED retornou status %d", resp.StatusCode)
	}

	doc, err := goquery.NewDocumentFromReader(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("ler página CMED: %w", err)
	}

	base, err := url.Parse(s.pageURL)
	if err != nil {
		return nil, err
	}

	var links []string
	seen := map[string]struct{}{}
	doc.Find("a[href]").Each(func(_ int, sel *goquery.Selection) {
		href, _ := sel.Attr("href")
		lower := strings.ToLower(href)
		if !strings.HasSuffix(lower, ".xlsx") && !strings.HasSuffix(lower, ".xls") && !strings.HasSuffix(lower, ".csv") {
			return
		}
		ref, err := url.Parse(href)
		if err != nil {
			return
		}
		resolved := base.ResolveReference(ref).String()
		if _, ok := seen[resolved]; ok {
			return
		}
		seen[resolved] = struct{}{}
		links = append(links, resolved)
	})

	if len(links) == 0 {
		return nil, fmt.Errorf("nenhum link de planilha encontrado em %s", s.pageURL)
	}
	return links, nil
}

// Download saves one spreadsheet link under the download dir and returns
// the local path.
func (s *Service) Download(link string) (string, error) {
	resp, err := s.client.Get(link)
	if err != nil {
		return "", fmt.Errorf("baixar %s: %w", link, err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return "", fmt.Errorf("download de %s retornou status %d", link, resp.StatusCode)
	}

	if err := os.MkdirAll(s.destDir, 0o755); err != nil {
		return "", err
	}

	name := fileNameFor(link)
	dest := filepath.Join(s.destDir, name)
	out, err := os.Create(dest)
	if err != nil {
		return "", err
	}
	defer out.Close()

	if _, err := io.Copy(out, resp.Body); err != nil {
		_ = os.Remove(dest)
		return "", fmt.Errorf("gravar %s: %w", dest, err)
	}
	return dest, nil
}

// FetchLatest grabs the first spreadsheet the page offers, which is the
// current publication.
func (s *Service) FetchLatest() (string, error) {
	links, err := s.ListSpreadsheetLinks()
	if err != nil {
		return "", err
	}
	return s.Download(links[0])
}

func fileNameFor(link string) string {
	parsed, err := url.Parse(link)
	if err != nil {
		return "cmed.xlsx"
	}
	name := path.Base(parsed.Path)
	if name == "" || name == "." || name == "/" {
		return "cmed.xlsx"
	}
	return name
}
