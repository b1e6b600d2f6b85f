package domain

import (
	"strings"
	"time"
	"unicode"
)

type Kind string

const (
	KindPDF      Kind = "pdf"
	KindMarkdown Kind = "markdown"
)

// Item is a catalog material seen from the current user's wallet.
type Item struct {
	ID          string
	Name        string
	Description string
	Category    string
	Cost        int
	PDF         string
	Module      string
	Headings    []string
	Owned       bool
	Affordable  bool
}

func (i Item) Kind() Kind {
	if i.PDF != "" {
		return KindPDF
	}
	return KindMarkdown
}

// Locked reports whether the item is priced and not yet purchased.
func (i Item) Locked() bool {
	return i.Cost > 0 && !i.Owned
}

type Page struct {
	Number int
	Text   string
}

type PDFFile struct {
	Filename    string
	DisplayName string
	Path        string
	Size        int64
	Modified    time.Time
}

// DisplayName turns "inner-child_workbook.pdf" into "Inner Child Workbook".
func DisplayName(filename string) string {
	name := filename
	if strings.HasSuffix(strings.ToLower(name), ".pdf") {
		name = name[:len(name)-len(".pdf")]
	}
	name = strings.NewReplacer("-", " ", "_", " ").Replace(name)
	runes := []rune(name)
	for i, r := range runes {
		if i == 0 || !isWordRune(runes[i-1]) {
			runes[i] = unicode.ToUpper(r)
		}
	}
	return string(runes)
}

func isWordRune(r rune) bool {
	return r == '_' || (r < unicode.MaxASCII && (unicode.IsLetter(r) || unicode.IsDigit(r)))
}

type Wallet struct {
	Experience int
	Owned      []string
}

func (w Wallet) Owns(id string) bool {
	for _, owned := range w.Owned {
		if owned == id {
			return true
		}
	}
	return false
}

// Opened is what a reader gets back for one material: a PDF page or the module's markdown.
type Opened struct {
	Item       Item
	Page       int
	TotalPages int
	Text       string
	Target     string
	Launched   bool
}
