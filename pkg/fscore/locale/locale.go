// Package locale holds the display labels for criteria and verdicts.
package locale

import (
	"golang.org/x/text/language"

	"github.com/komsit37/fscore/pkg/fscore/score"
)

// Catalog is the set of labels for one language.
type Catalog struct {
	Tag            language.Tag
	Criteria       map[score.Key]string
	Interpretation map[score.Interpretation]string
	Headers        map[string]string
	NotFound       string
	FetchFailed    string
	TotalLabel     string
	Title          string
	Prompt         string
}

var english = Catalog{
	Tag: language.English,
	Criteria: map[score.Key]string{
		score.RevenueGrowth:  "Revenue growth",
		score.EarningsGrowth: "Earnings growth",
		score.ROE:            "Return on equity (ROE)",
		score.DebtEquity:     "Debt/Equity",
		score.PE:             "P/E ratio",
		score.PEG:            "PEG ratio",
		score.PB:             "P/B ratio",
		score.Dividend:       "Dividend",
		score.NetMargin:      "Net margin",
	},
	Interpretation: map[score.Interpretation]string{
		score.Strong:       "strong fundamentals",
		score.Sound:        "sound, verify further",
		score.ElevatedRisk: "elevated risk / needs improvement",
	},
	Headers: map[string]string{
		"criterion": "criterion",
		"key":       "key",
		"value":     "value",
		"score":     "score",
		"max":       "max",
		"inputs":    "inputs",
	},
	NotFound:    "Ticker could not be found. Please try a different name.",
	FetchFailed: "Data retrieval failed",
	TotalLabel:  "Total score",
	Title:       "Fundamental analysis",
	Prompt:      "Company name or ticker",
}

var german = Catalog{
	Tag: language.German,
	Criteria: map[score.Key]string{
		score.RevenueGrowth:  "Umsatzwachstum",
		score.EarningsGrowth: "Gewinnwachstum",
		score.ROE:            "Eigenkapitalrendite (ROE)",
		score.DebtEquity:     "Verschuldung (Debt/Equity)",
		score.PE:             "KGV",
		score.PEG:            "PEG-Ratio",
		score.PB:             "KBV",
		score.Dividend:       "Dividende",
		score.NetMargin:      "Nettomarge",
	},
	Interpretation: map[score.Interpretation]string{
		score.Strong:       "starke Fundamentaldaten",
		score.Sound:        "solide, weiter prüfen",
		score.ElevatedRisk: "erhöhtes Risiko / verbesserungswürdig",
	},
	Headers: map[string]string{
		"criterion": "Kriterium",
		"key":       "Schlüssel",
		"value":     "Wert",
		"score":     "Punkte",
		"max":       "Max",
		"inputs":    "Eingaben",
	},
	NotFound:    "Ticker konnte nicht gefunden werden. Bitte versuche es mit einem anderen Namen.",
	FetchFailed: "Fehler bei der Datenabfrage",
	TotalLabel:  "Gesamtpunktzahl",
	Title:       "Fundamentalanalyse von Aktien",
	Prompt:      "Unternehmensname oder Ticker",
}

var (
	catalogs = []Catalog{english, german}
	matcher  = language.NewMatcher([]language.Tag{language.English, language.German})
)

// Default is the English catalog.
func Default() Catalog { return english }

// Match picks the best catalog for a language preference such as "de",
// "de-AT" or an Accept-Language header value. Unknown input falls back to
// English.
func Match(pref string) Catalog {
	tags, _, err := language.ParseAcceptLanguage(pref)
	if err != nil || len(tags) == 0 {
		return english
	}
	_, idx, conf := matcher.Match(tags...)
	if conf == language.No {
		return english
	}
	return catalogs[idx]
}

// Criterion returns the label for k, falling back to the key itself.
func (c Catalog) Criterion(k score.Key) string {
	if s, ok := c.Criteria[k]; ok {
		return s
	}
	return string(k)
}

// Verdict returns the label for an interpretation bucket.
func (c Catalog) Verdict(i score.Interpretation) string {
	if s, ok := c.Interpretation[i]; ok {
		return s
	}
	return string(i)
}

// Header returns the column header label for col.
func (c Catalog) Header(col string) string {
	if s, ok := c.Headers[col]; ok {
		return s
	}
	return col
}
