package sheets

import (
	"context"
	"encoding/json"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/Beka01247/restaurant-client/internal/domain"
	"google.golang.org/api/option"
	"google.golang.org/api/sheets/v4"
)

func TestAppendCheckout(t *testing.T) {
	var (
		gotPath  string
		gotQuery string
		gotBody  sheets.ValueRange
	)
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		gotPath = r.URL.Path
		gotQuery = r.URL.RawQuery
		b, _ := io.ReadAll(r.Body)
		json.Unmarshal(b, &gotBody)
		w.Header().Set("Content-Type", "application/json")
		w.Write([]byte(`{"spreadsheetId": "sheet-1"}`))
	}))
	t.Cleanup(srv.Close)

	ctx := context.Background()
	svc, err := sheets.NewService(ctx, option.WithoutAuthentication(), option.WithEndpoint(srv.URL+"/"))
	if err != nil {
		t.Fatal(err)
	}
	exp := newExporter(svc, Config{SpreadsheetID: "sheet-1"})

	archive := domain.CheckoutArchive{
		CheckoutID: "31",
		CartID:     "9",
		UserID:     "3",
		Outcome:    domain.EventCheckoutProcessed,
		TotalPrice: "20000",
		ItemCount:  2,
		ArchivedAt: time.Date(2025, 5, 1, 10, 0, 0, 0, time.UTC),
	}
	if err := exp.AppendCheckout(ctx, archive); err != nil {
		t.Fatal(err)
	}

	if !strings.Contains(gotPath, "/spreadsheets/sheet-1/values/") || !strings.HasSuffix(gotPath, ":append") {
		t.Errorf("path = %s", gotPath)
	}
	if !strings.Contains(gotQuery, "valueInputOption=USER_ENTERED") {
		t.Errorf("query = %s", gotQuery)
	}
	if len(gotBody.Values) != 1 || len(gotBody.Values[0]) != 8 {
		t.Fatalf("values = %v", gotBody.Values)
	}
	if gotBody.Values[0][1] != "31" || gotBody.Values[0][4] != domain.EventCheckoutProcessed {
		t.Errorf("row = %v", gotBody.Values[0])
	}
}
