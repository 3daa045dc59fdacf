// Package kintonetest provides an in-memory stand-in for the two kintone apps
// the receiver talks to: an order-tracking app and an item-master app.
package kintonetest

import (
	"encoding/json"
	"io"
	"net/http"
	"sort"
	"strconv"
	"strings"
	"sync"

	"github.com/go-chi/chi/v5"

	"github.com/ruudy-sib/stocksync/internal/domain"
)

// Call is one request the fake received.
type Call struct {
	Method string
	Path   string
	App    string
	ID     string
	Query  string
	Token  string
}

// Line is one row of a multi-item order.
type Line struct {
	Code     string
	Quantity float64
}

type item struct {
	code  string
	stock float64
}

type field struct {
	Type  string `json:"type"`
	Value any    `json:"value"`
}

// Fake implements the kintone record endpoints for one order app and one item app.
type Fake struct {
	orderApp string
	itemApp  string

	mu         sync.Mutex
	orders     map[string]map[string]field
	items      map[string]*item
	calls      []Call
	failOrders bool

	router chi.Router
}

// New creates an empty fake serving the given app IDs.
func New(orderApp, itemApp string) *Fake {
	f := &Fake{
		orderApp: orderApp,
		itemApp:  itemApp,
		orders:   make(map[string]map[string]field),
		items:    make(map[string]*item),
	}

	r := chi.NewRouter()
	r.Get("/k/v1/record.json", f.getRecord)
	r.Get("/k/v1/records.json", f.getRecords)
	r.Put("/k/v1/record.json", f.putRecord)
	f.router = r
	return f
}

// AddOrder stores a single-item order addressed by item record ID.
func (f *Fake) AddOrder(id, orderType, itemID string, qty float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[id] = map[string]field{
		"$id":        {Type: "__ID__", Value: id},
		"order_type": {Type: "DROP_DOWN", Value: orderType},
		"item_rn":    {Type: "NUMBER", Value: itemID},
		"qty":        {Type: "NUMBER", Value: formatNumber(qty)},
	}
}

// AddMultiItemOrder stores an order whose lines are addressed by item code.
func (f *Fake) AddMultiItemOrder(id, orderType string, lines ...Line) {
	rows := make([]map[string]any, 0, len(lines))
	for i, l := range lines {
		rows = append(rows, map[string]any{
			"id": strconv.Itoa(i + 1),
			"value": map[string]field{
				"item_code": {Type: "SINGLE_LINE_TEXT", Value: l.Code},
				"qty":       {Type: "NUMBER", Value: formatNumber(l.Quantity)},
			},
		})
	}

	f.mu.Lock()
	defer f.mu.Unlock()
	f.orders[id] = map[string]field{
		"$id":           {Type: "__ID__", Value: id},
		"order_type":    {Type: "DROP_DOWN", Value: orderType},
		"ordered_items": {Type: "SUBTABLE", Value: rows},
	}
}

// AddItem stores an item master record.
func (f *Fake) AddItem(id, code string, stock float64) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.items[id] = &item{code: code, stock: stock}
}

// Stock returns the current stock of an item.
func (f *Fake) Stock(id string) (float64, bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	it, ok := f.items[id]
	if !ok {
		return 0, false
	}
	return it.stock, true
}

// FailOrders makes every order read answer 500.
func (f *Fake) FailOrders(fail bool) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.failOrders = fail
}

// Calls returns a copy of the requests received so far.
func (f *Fake) Calls() []Call {
	f.mu.Lock()
	defer f.mu.Unlock()
	out := make([]Call, len(f.calls))
	copy(out, f.calls)
	return out
}

// ItemCalls returns the requests that touched the item app.
func (f *Fake) ItemCalls() []Call {
	var out []Call
	for _, c := range f.Calls() {
		if c.App == f.itemApp {
			out = append(out, c)
		}
	}
	return out
}

func (f *Fake) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	f.router.ServeHTTP(w, r)
}

func (f *Fake) record(r *http.Request, app, id string) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.calls = append(f.calls, Call{
		Method: r.Method,
		Path:   r.URL.Path,
		App:    app,
		ID:     id,
		Query:  r.URL.Query().Get("query"),
		Token:  r.Header.Get(domain.APITokenHeader),
	})
}

func (f *Fake) getRecord(w http.ResponseWriter, r *http.Request) {
	app, id := r.URL.Query().Get("app"), r.URL.Query().Get("id")
	f.record(r, app, id)

	f.mu.Lock()
	defer f.mu.Unlock()

	switch app {
	case f.orderApp:
		if f.failOrders {
			writeError(w, http.StatusInternalServerError, "GAIA_IL01", "internal error")
			return
		}
		order, ok := f.orders[id]
		if !ok {
			writeError(w, http.StatusNotFound, "GAIA_RE01", "record not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": order})
	case f.itemApp:
		it, ok := f.items[id]
		if !ok {
			writeError(w, http.StatusNotFound, "GAIA_RE01", "record not found")
			return
		}
		writeJSON(w, http.StatusOK, map[string]any{"record": itemRecord(id, it)})
	default:
		writeError(w, http.StatusNotFound, "GAIA_AP01", "app not found")
	}
}

func (f *Fake) getRecords(w http.ResponseWriter, r *http.Request) {
	app := r.URL.Query().Get("app")
	f.record(r, app, "")

	if app != f.itemApp {
		writeError(w, http.StatusNotFound, "GAIA_AP01", "app not found")
		return
	}
	code, ok := parseCodeQuery(r.URL.Query().Get("query"))
	if !ok {
		writeError(w, http.StatusBadRequest, "GAIA_IQ11", "unsupported query")
		return
	}

	f.mu.Lock()
	defer f.mu.Unlock()

	ids := make([]string, 0, len(f.items))
	for id := range f.items {
		ids = append(ids, id)
	}
	sort.Strings(ids)

	records := make([]map[string]field, 0)
	for _, id := range ids {
		if f.items[id].code == code {
			records = append(records, itemRecord(id, f.items[id]))
		}
	}
	writeJSON(w, http.StatusOK, map[string]any{"records": records, "totalCount": nil})
}

func (f *Fake) putRecord(w http.ResponseWriter, r *http.Request) {
	var req struct {
		App    json.RawMessage `json:"app"`
		ID     json.RawMessage `json:"id"`
		Record map[string]struct {
			Value float64 `json:"value"`
		} `json:"record"`
	}
	body, _ := io.ReadAll(r.Body)
	if err := json.Unmarshal(body, &req); err != nil {
		f.record(r, "", "")
		writeError(w, http.StatusBadRequest, "CB_IJ01", "invalid JSON")
		return
	}

	app, id := unquote(req.App), unquote(req.ID)
	f.record(r, app, id)

	f.mu.Lock()
	defer f.mu.Unlock()

	it, ok := f.items[id]
	if app != f.itemApp || !ok {
		writeError(w, http.StatusNotFound, "GAIA_RE01", "record not found")
		return
	}
	if stock, ok := req.Record["stock"]; ok {
		it.stock = stock.Value
	}
	writeJSON(w, http.StatusOK, map[string]string{"revision": "2"})
}

func itemRecord(id string, it *item) map[string]field {
	return map[string]field{
		"$id":       {Type: "__ID__", Value: id},
		"item_code": {Type: "SINGLE_LINE_TEXT", Value: it.code},
		"stock":     {Type: "NUMBER", Value: formatNumber(it.stock)},
	}
}

// parseCodeQuery understands only `item_code = "..."`.
func parseCodeQuery(q string) (string, bool) {
	rest, ok := strings.CutPrefix(strings.TrimSpace(q), "item_code = ")
	if !ok {
		return "", false
	}
	code, err := strconv.Unquote(rest)
	if err != nil {
		return "", false
	}
	return code, true
}

func unquote(raw json.RawMessage) string {
	var s string
	if err := json.Unmarshal(raw, &s); err == nil {
		return s
	}
	return strings.TrimSpace(string(raw))
}

func formatNumber(v float64) string {
	return strconv.FormatFloat(v, 'f', -1, 64)
}

func writeJSON(w http.ResponseWriter, status int, v any) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}

func writeError(w http.ResponseWriter, status int, code, message string) {
	writeJSON(w, status, map[string]string{"code": code, "message": message})
}
