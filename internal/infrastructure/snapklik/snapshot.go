package snapklik

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"regexp"
	"strconv"
	"strings"

	"github.com/PuerkitoBio/goquery"
	"github.com/skinsift/backend/internal/domain"
)

// productObjectPattern matches complete product object literals embedded in
// a rendered search page.
var productObjectPattern = regexp.MustCompile(`\{[^{]*"skid":"[^"]*"[^}]*"categories":\[[^\]]*\][^}]*\}`)

// Per-field salvage patterns for fragments that fail to unmarshal as JSON.
var (
	skidFieldPattern       = regexp.MustCompile(`"skid":"([^"]+)"`)
	textFieldPattern       = regexp.MustCompile(`"text":"([^"]+)"`)
	categoriesFieldPattern = regexp.MustCompile(`"categories":(\[[^\]]*\])`)
	brandFieldPattern      = regexp.MustCompile(`"brand":"([^"]*)"`)
	priceFieldPattern      = regexp.MustCompile(`"price":([0-9]+)`)
	listPriceFieldPattern  = regexp.MustCompile(`"listPrice":([0-9]+)`)
	scoreFieldPattern      = regexp.MustCompile(`"score":([0-9]+)`)
	imageFieldPattern      = regexp.MustCompile(`"image":"([^"]*)"`)
	slugFieldPattern       = regexp.MustCompile(`"slug":"([^"]*)"`)
	badgeFieldPattern      = regexp.MustCompile(`"badge":"([^"]*)"`)
	rankNameFieldPattern   = regexp.MustCompile(`"rankName":"([^"]*)"`)
	optionMapFieldPattern  = regexp.MustCompile(`"OptionMap":(\{[^}]*\})`)
)

// LoadSnapshot reads a saved HTML search page and salvages whatever product
// records it can. Used as a best-effort fallback when the API is down.
func LoadSnapshot(path string) ([]domain.RawProduct, error) {
	f, err := os.Open(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, fmt.Errorf("%w: %s", domain.ErrSnapshotNotFound, path)
		}
		return nil, err
	}
	defer f.Close()

	return ParseSnapshot(f)
}

// ParseSnapshot extracts product records from a rendered search page. The
// page embeds product JSON inside script tags; records that are not valid
// JSON (truncated by the renderer, escaped oddly) are salvaged field by
// field. Nothing here is fatal: the result is whatever could be recovered.
func ParseSnapshot(r io.Reader) ([]domain.RawProduct, error) {
	doc, err := goquery.NewDocumentFromReader(r)
	if err != nil {
		return nil, fmt.Errorf("parse snapshot html: %w", err)
	}

	var scripts strings.Builder
	doc.Find("script").Each(func(_ int, s *goquery.Selection) {
		scripts.WriteString(s.Text())
		scripts.WriteByte('\n')
	})

	content := scripts.String()
	products := salvageProducts(content)

	if len(products) == 0 {
		// Some snapshots carry the data outside script tags; scan the
		// whole document before giving up.
		if html, err := doc.Html(); err == nil {
			content = html
			products = salvageProducts(content)
		}
	}

	if len(products) == 0 {
		products = pairScatteredFields(content)
	}

	return products, nil
}

// salvageProducts finds product object literals and decodes each one,
// falling back to per-field extraction when a fragment is not valid JSON.
func salvageProducts(content string) []domain.RawProduct {
	var products []domain.RawProduct

	for _, match := range productObjectPattern.FindAllString(content, -1) {
		var record domain.RawProduct
		if err := json.Unmarshal([]byte(match), &record); err == nil {
			if _, ok := record["skid"]; ok {
				if _, ok := record["categories"]; ok {
					products = append(products, record)
					continue
				}
			}
		}

		if record := salvageFields(match); record != nil {
			products = append(products, record)
		}
	}

	return products
}

// salvageFields rebuilds a product record from individual field patterns.
// Requires at least a skid and a category list; everything else is optional.
func salvageFields(fragment string) domain.RawProduct {
	skid := firstGroup(skidFieldPattern, fragment)
	categories := firstGroup(categoriesFieldPattern, fragment)
	if skid == "" || categories == "" {
		return nil
	}

	var categoryList []string
	if err := json.Unmarshal([]byte(categories), &categoryList); err != nil {
		return nil
	}

	record := domain.RawProduct{
		"skid":       skid,
		"text":       firstGroup(textFieldPattern, fragment),
		"categories": toAnyList(categoryList),
		"brand":      firstGroup(brandFieldPattern, fragment),
	}

	setIfPresent(record, "image", firstGroup(imageFieldPattern, fragment))
	setIfPresent(record, "slug", firstGroup(slugFieldPattern, fragment))
	setIfPresent(record, "badge", firstGroup(badgeFieldPattern, fragment))
	setIfPresent(record, "rankName", firstGroup(rankNameFieldPattern, fragment))
	setNumberIfPresent(record, "price", firstGroup(priceFieldPattern, fragment))
	setNumberIfPresent(record, "listPrice", firstGroup(listPriceFieldPattern, fragment))
	setNumberIfPresent(record, "score", firstGroup(scoreFieldPattern, fragment))

	if options := firstGroup(optionMapFieldPattern, fragment); options != "" {
		var optionMap map[string]any
		if err := json.Unmarshal([]byte(options), &optionMap); err == nil {
			record["OptionMap"] = optionMap
		}
	}

	return record
}

// pairScatteredFields is the last-resort path: individual skid/text/category
// occurrences are paired up positionally. Categories are optional here; a
// record with just an ID and a name is still worth keeping.
func pairScatteredFields(content string) []domain.RawProduct {
	skids := allGroups(skidFieldPattern, content)
	texts := allGroups(textFieldPattern, content)
	categories := allGroups(categoriesFieldPattern, content)
	brands := allGroups(brandFieldPattern, content)

	var products []domain.RawProduct

	n := min(len(skids), len(texts), len(categories))
	for i := 0; i < n; i++ {
		var categoryList []string
		if err := json.Unmarshal([]byte(categories[i]), &categoryList); err != nil {
			continue
		}
		record := domain.RawProduct{
			"skid":       skids[i],
			"text":       texts[i],
			"categories": toAnyList(categoryList),
		}
		if i < len(brands) {
			record["brand"] = brands[i]
		}
		products = append(products, record)
	}

	if len(products) > 0 {
		return products
	}

	for i := 0; i < min(len(skids), len(texts)); i++ {
		products = append(products, domain.RawProduct{
			"skid": skids[i],
			"text": texts[i],
		})
	}

	return products
}

func firstGroup(pattern *regexp.Regexp, s string) string {
	m := pattern.FindStringSubmatch(s)
	if len(m) < 2 {
		return ""
	}
	return m[1]
}

func allGroups(pattern *regexp.Regexp, s string) []string {
	matches := pattern.FindAllStringSubmatch(s, -1)
	groups := make([]string, 0, len(matches))
	for _, m := range matches {
		if len(m) >= 2 {
			groups = append(groups, m[1])
		}
	}
	return groups
}

func setIfPresent(record domain.RawProduct, key, value string) {
	if value != "" {
		record[key] = value
	}
}

func setNumberIfPresent(record domain.RawProduct, key, value string) {
	if value == "" {
		return
	}
	if n, err := strconv.ParseFloat(value, 64); err == nil {
		record[key] = n
	}
}

func toAnyList(values []string) []any {
	out := make([]any, len(values))
	for i, v := range values {
		out[i] = v
	}
	return out
}
