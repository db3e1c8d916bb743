package invest

import (
	"bufio"
	"context"
	"encoding/json"
	"fmt"
	"html"
	"io"
	"net/http"
	"strings"

	"github.com/PaesslerAG/jsonpath"
	"github.com/microcosm-cc/bluemonday"
	"github.com/shopspring/decimal"
)

// This file contains code to persist the catalog as JSONL, one quote per line,
// and to import it from the backend's JSON documents.
//
//   {"symbol":"PETR4","name":"Petrobras PN","type":"stock","price":"32.5","currency":"BRL"}
//   {"symbol":"CDB-XP-2027","name":"CDB XP 2027","type":"cdb"}

// jquote is the object read from a catalog file using json parser.
type jquote struct {
	Symbol   string          `json:"symbol"`
	Name     string          `json:"name"`
	Type     string          `json:"type"`
	Kind     string          `json:"kind"`
	Price    decimal.Decimal `json:"price"`
	Currency string          `json:"currency"`
}

// catalog entries come from a remote service, and end up in markdown and web pages.
var textPolicy = bluemonday.StrictPolicy()

// sanitize strips any markup, and returns plain text.
func sanitize(s string) string {
	return strings.TrimSpace(html.UnescapeString(textPolicy.Sanitize(s)))
}

// quote converts the json object into a Quote. 'kind' wins over 'type'.
func (j jquote) quote() (Quote, error) {
	symbol := strings.ToUpper(sanitize(j.Symbol))
	name := sanitize(j.Name)
	typ := strings.ToLower(sanitize(j.Type))

	k := j.Kind
	if k == "" {
		k = typ
	}
	kind, err := ParseKind(k)
	if err != nil {
		return Quote{}, fmt.Errorf("instrument %q: %w", symbol, err)
	}
	if typ == "" {
		typ = kind.String()
	}
	cur := j.Currency
	if cur == "" {
		cur = DefaultCurrency
	}
	return NewQuote(symbol, name, kind, M(j.Price, cur)).WithType(typ), nil
}

// MarshalJSON implements the json.Marshaler interface for Quote.
func (q Quote) MarshalJSON() ([]byte, error) {
	var w jsonObjectWriter
	w.Append("symbol", q.symbol)
	w.Optional("name", q.name)
	w.Optional("type", q.typ)
	w.Append("kind", q.kind)
	if q.kind == ShareBased {
		w.Append("price", q.price)
	}
	w.Optional("currency", q.price.cur)
	return w.MarshalJSON()
}

// UnmarshalJSON implements the json.Unmarshaler interface for Quote.
func (q *Quote) UnmarshalJSON(data []byte) error {
	var j jquote
	if err := json.Unmarshal(data, &j); err != nil {
		return err
	}
	v, err := j.quote()
	if err != nil {
		return err
	}
	*q = v
	return nil
}

// DecodeCatalog reads a JSONL catalog. filename is for error message only.
func DecodeCatalog(filename string, r io.Reader) (*Catalog, error) {
	c := NewCatalog()
	scanner := bufio.NewScanner(r)
	i := 0
	for scanner.Scan() {
		i++
		line := scanner.Bytes()
		if len(strings.TrimSpace(string(line))) == 0 {
			continue
		}
		var q Quote
		if err := json.Unmarshal(line, &q); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, i, err)
		}
		if c.Has(q.symbol) {
			return nil, fmt.Errorf("format error in %s:%d: symbol %q is already defined", filename, i, q.symbol)
		}
		if err := c.Add(q); err != nil {
			return nil, fmt.Errorf("format error in %s:%d: %w", filename, i, err)
		}
	}
	if err := scanner.Err(); err != nil {
		return nil, fmt.Errorf("cannot read %s: %w", filename, err)
	}
	return c, nil
}

// EncodeCatalog writes the catalog as JSONL, in symbol order.
func EncodeCatalog(w io.Writer, c *Catalog) error {
	for _, q := range c.All() {
		line, err := json.Marshal(q)
		if err != nil {
			return fmt.Errorf("cannot encode %q: %w", q.symbol, err)
		}
		if _, err := w.Write(append(line, '\n')); err != nil {
			return err
		}
	}
	return nil
}

// DecodeCatalogJSON reads the catalog out of any JSON document. 'path' is a
// jsonpath selecting the list of entries, e.g. "$.data.investments[*]".
// Entries that are not valid quotes are skipped with their error reported in
// 'skipped'.
func DecodeCatalogJSON(r io.Reader, path string) (c *Catalog, skipped []error, err error) {
	var doc any
	if err := json.NewDecoder(r).Decode(&doc); err != nil {
		return nil, nil, fmt.Errorf("cannot parse catalog document: %w", err)
	}
	return catalogFromDocument(doc, path)
}

// FetchCatalog downloads the catalog document from the backend and decodes it
// like DecodeCatalogJSON.
func FetchCatalog(ctx context.Context, client *http.Client, addr, path string) (*Catalog, []error, error) {
	var doc any
	if err := jwget(ctx, client, addr, &doc); err != nil {
		return nil, nil, fmt.Errorf("cannot fetch catalog: %w", err)
	}
	return catalogFromDocument(doc, path)
}

func catalogFromDocument(doc any, path string) (*Catalog, []error, error) {
	jval, err := jsonpath.Get(path, doc)
	if err != nil {
		return nil, nil, fmt.Errorf("error selecting %q in catalog document: %w", path, err)
	}
	// a single object selected is a catalog of one.
	entries, ok := jval.([]any)
	if !ok {
		entries = []any{jval}
	}

	c := NewCatalog()
	var skipped []error
	for i, entry := range entries {
		raw, err := json.Marshal(entry)
		if err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		var q Quote
		if err := json.Unmarshal(raw, &q); err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
			continue
		}
		if err := c.Add(q); err != nil {
			skipped = append(skipped, fmt.Errorf("entry %d: %w", i, err))
		}
	}
	return c, skipped, nil
}
