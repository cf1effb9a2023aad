package domain

import (
	"bytes"
	"encoding/json"
	"strconv"
	"time"
)

// RawProduct is an upstream catalog record as returned by Snapklik.
// No field is guaranteed to be present or correctly typed; some list
// fields arrive as JSON encoded inside a string.
type RawProduct map[string]any

// Amount is an optional numeric field. Upstream records omit prices and
// scores entirely rather than sending zero, so absence must survive all
// the way to the output tables as empty text, never as "0".
type Amount struct {
	Value float64
	Valid bool
}

// NewAmount returns a present Amount.
func NewAmount(v float64) Amount {
	return Amount{Value: v, Valid: true}
}

// String renders the amount the way it appears in the flat product table:
// the bare number when present, empty text when absent.
func (a Amount) String() string {
	if !a.Valid {
		return ""
	}
	return strconv.FormatFloat(a.Value, 'f', -1, 64)
}

// USD renders the amount as a dollar price. Snapklik prices are integer
// cents, so 1999 renders as "$19.99". Absent amounts render as empty text.
func (a Amount) USD() string {
	if !a.Valid {
		return ""
	}
	return "$" + strconv.FormatFloat(a.Value/100, 'f', 2, 64)
}

// MarshalJSON emits the numeric value when present and "" when absent,
// mirroring the upstream empty-string sentinel.
func (a Amount) MarshalJSON() ([]byte, error) {
	if !a.Valid {
		return []byte(`""`), nil
	}
	return json.Marshal(a.Value)
}

// UnmarshalJSON accepts a number, a numeric string, an empty string, or null.
func (a *Amount) UnmarshalJSON(data []byte) error {
	data = bytes.TrimSpace(data)
	if len(data) == 0 || string(data) == "null" || string(data) == `""` {
		*a = Amount{}
		return nil
	}
	if data[0] == '"' {
		var s string
		if err := json.Unmarshal(data, &s); err != nil {
			return err
		}
		v, err := strconv.ParseFloat(s, 64)
		if err != nil {
			*a = Amount{}
			return nil
		}
		*a = NewAmount(v)
		return nil
	}
	var v float64
	if err := json.Unmarshal(data, &v); err != nil {
		return err
	}
	*a = NewAmount(v)
	return nil
}

// FlatProduct is the normalized, fixed-schema product record used for all
// downstream processing and output. Every string field defaults to empty,
// never to a missing value.
type FlatProduct struct {
	Name        string `json:"name"`
	Brand       string `json:"brand"`
	Description string `json:"description"`
	Price       Amount `json:"price"`
	ListPrice   Amount `json:"listPrice"`
	Score       Amount `json:"score"`
	Images      string `json:"images"`
	ProductID   string `json:"productId"`
	SourceURL   string `json:"sourceUrl"`
	Badge       string `json:"badge"`
	RankName    string `json:"rankName"`
	// Ingredients is a " | "-joined ordered sequence of candidate
	// ingredient/category tokens; may be empty.
	Ingredients string `json:"ingredients"`
	SizeVolume  string `json:"sizeVolume"`
	SkinConcern string `json:"skinConcern"`
	ProductLine string `json:"productLine"`
	Barcode     string `json:"barcode"`
}

// RankedProduct is a product annotated with its relevance score inside an
// ingredient group. The score is a deliberately simple proxy (name length
// plus brand length), not a true relevance signal.
type RankedProduct struct {
	Product   FlatProduct `json:"product"`
	Relevance int         `json:"relevance"`
}

// GroupRow is one row of the grouped/ranked output table: a single
// (ingredient, rank) pair.
type GroupRow struct {
	KeyIngredient string `json:"keyIngredient"`
	Rank          int    `json:"rank"`
	ProductName   string `json:"productName"`
	Brand         string `json:"brand"`
	PriceUSD      string `json:"priceUsd"`
	ProductScore  int    `json:"productScore"`
}

// GroupCount is an ingredient group size, used for run summaries.
type GroupCount struct {
	Ingredient string `json:"ingredient"`
	Products   int    `json:"products"`
}

// SearchPage is one page of Snapklik search results.
type SearchPage struct {
	Hits     []RawProduct
	Finished bool
}

// Catalog is the materialized result of one full pipeline run.
type Catalog struct {
	Products  []FlatProduct `json:"products"`
	Groups    []GroupRow    `json:"groups"`
	FetchedAt time.Time     `json:"fetchedAt"`
}
