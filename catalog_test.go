package invest

import (
	"bytes"
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
)

func newTestCatalog(t *testing.T) *Catalog {
	t.Helper()
	c := NewCatalog()
	for _, q := range []Quote{PETR4, HGLG11, CDB, NewQuote("PETR3", "Petrobras ON", ShareBased, BRL(35.1))} {
		if err := c.Add(q); err != nil {
			t.Fatalf("Add(%s) error = %v", q.Symbol(), err)
		}
	}
	return c
}

func TestCatalog(t *testing.T) {
	c := newTestCatalog(t)

	if got := c.Len(); got != 4 {
		t.Errorf("Len() = %d, want 4", got)
	}
	q, ok := c.Get("HGLG11")
	if !ok || !q.UnitPrice().Equal(BRL(158.37)) {
		t.Errorf("Get(HGLG11) = %v, %v", q, ok)
	}
	if c.Has("VALE3") {
		t.Error("Has(VALE3) = true, want false")
	}

	var symbols []string
	for _, q := range c.All() {
		symbols = append(symbols, q.Symbol())
	}
	if got, want := strings.Join(symbols, " "), "CDB-XP-2027 HGLG11 PETR3 PETR4"; got != want {
		t.Errorf("All() = %s, want %s", got, want)
	}
	if got, want := strings.Join(c.Symbols("petr"), " "), "PETR3 PETR4"; got != want {
		t.Errorf("Symbols(petr) = %s, want %s", got, want)
	}
	if got := c.Search("X"); len(got) != 0 {
		t.Errorf("Search(X) = %v, want none", got)
	}
}

func TestCatalog_AddRejects(t *testing.T) {
	c := NewCatalog()
	if err := c.Add(NewQuote("bad symbol", "", FixedIncome, BRL(0))); err == nil {
		t.Error("Add() with an invalid symbol should fail")
	}
	if err := c.Add(NewQuote("VALE3", "", ShareBased, BRL(0))); err == nil {
		t.Error("Add() of a share-based quote without price should fail")
	}
}

func TestCatalog_JSONLRoundTrip(t *testing.T) {
	c := newTestCatalog(t)
	var buf bytes.Buffer
	if err := EncodeCatalog(&buf, c); err != nil {
		t.Fatalf("EncodeCatalog() error = %v", err)
	}
	first, _, _ := strings.Cut(buf.String(), "\n")
	if want := `{"symbol":"CDB-XP-2027","name":"CDB XP 2027","type":"cdb","kind":"fixed-income","currency":"BRL"}`; first != want {
		t.Errorf("first line = %s, want %s", first, want)
	}

	got, err := DecodeCatalog("test.jsonl", &buf)
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}
	if got.Len() != c.Len() {
		t.Fatalf("decoded %d quotes, want %d", got.Len(), c.Len())
	}
	for _, want := range c.All() {
		q, ok := got.Get(want.Symbol())
		if !ok {
			t.Errorf("%s missing after round trip", want.Symbol())
			continue
		}
		if q.Kind() != want.Kind() || q.Type() != want.Type() || !q.UnitPrice().Equal(want.UnitPrice()) || q.Name() != want.Name() {
			t.Errorf("decoded %+v, want %+v", q, want)
		}
	}
}

func TestDecodeCatalog_Errors(t *testing.T) {
	tests := []struct {
		name, input string
	}{
		{"bad json", `{"symbol":`},
		{"unknown type", `{"symbol":"X1","type":"crypto"}`},
		{"duplicate", "{\"symbol\":\"X1\",\"type\":\"cdb\"}\n{\"symbol\":\"X1\",\"type\":\"cdb\"}"},
		{"missing price", `{"symbol":"X1","type":"stock"}`},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if _, err := DecodeCatalog("test.jsonl", strings.NewReader(tt.input)); err == nil {
				t.Error("DecodeCatalog() error = nil, want an error")
			}
		})
	}
}

func TestDecodeCatalog_Sanitized(t *testing.T) {
	c, err := DecodeCatalog("test.jsonl", strings.NewReader(`{"symbol":" petr4 ","name":"<b>Petrobras</b> PN","type":"STOCK","price":32.5}`))
	if err != nil {
		t.Fatalf("DecodeCatalog() error = %v", err)
	}
	q, ok := c.Get("PETR4")
	if !ok {
		t.Fatal("PETR4 not found")
	}
	if q.Name() != "Petrobras PN" {
		t.Errorf("Name() = %q, want %q", q.Name(), "Petrobras PN")
	}
	if q.Type() != "stock" || q.Kind() != ShareBased {
		t.Errorf("Type() = %q, Kind() = %v", q.Type(), q.Kind())
	}
}

const backendDocument = `{
  "status": "ok",
  "data": {
    "investments": [
      {"symbol": "PETR4", "name": "Petrobras PN", "type": "acao", "price": 32.50},
      {"symbol": "HGLG11", "name": "CSHG Logística", "type": "fii", "price": "158.37"},
      {"symbol": "CDB-XP-2027", "name": "CDB XP 2027", "type": "cdb"},
      {"symbol": "BTC", "type": "crypto"}
    ]
  }
}`

func TestDecodeCatalogJSON(t *testing.T) {
	c, skipped, err := DecodeCatalogJSON(strings.NewReader(backendDocument), "$.data.investments")
	if err != nil {
		t.Fatalf("DecodeCatalogJSON() error = %v", err)
	}
	if len(skipped) != 1 {
		t.Errorf("skipped = %v, want the crypto entry only", skipped)
	}
	if got, want := fmt.Sprint(c.Symbols("")), "[CDB-XP-2027 HGLG11 PETR4]"; got != want {
		t.Errorf("Symbols() = %s, want %s", got, want)
	}
	q, _ := c.Get("HGLG11")
	if !q.UnitPrice().Equal(BRL(158.37)) {
		t.Errorf("HGLG11 price = %v", q.UnitPrice())
	}
}

func TestDecodeCatalogJSON_BadPath(t *testing.T) {
	if _, _, err := DecodeCatalogJSON(strings.NewReader(backendDocument), "$.nothing.here"); err == nil {
		t.Error("DecodeCatalogJSON() error = nil, want an error for a missing path")
	}
}

func TestFetchCatalog(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		fmt.Fprint(w, backendDocument)
	}))
	defer srv.Close()

	c, _, err := FetchCatalog(context.Background(), srv.Client(), srv.URL, "$.data.investments")
	if err != nil {
		t.Fatalf("FetchCatalog() error = %v", err)
	}
	if c.Len() != 3 {
		t.Errorf("Len() = %d, want 3", c.Len())
	}
}
