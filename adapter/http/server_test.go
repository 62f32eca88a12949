package rest

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"reflect"
	"testing"

	"github.com/forest33/bitguard/business/entity"
	"github.com/forest33/bitguard/pkg/logger"
)

type receiverStub struct {
	stat *entity.Statistic
}

func (r *receiverStub) GetStatistic() *entity.Statistic {
	return r.stat
}

func TestStatistic(t *testing.T) {
	stub := &receiverStub{stat: &entity.Statistic{
		Malformed: 2,
		Schemes: map[string]*entity.SchemeStatistic{
			entity.SchemeNameParity1D: {Exchanges: 10, Accepted: 7, Rejected: 3, Corrupted: 4, Undetected: 1},
			entity.SchemeNameCRC:      {Exchanges: 5, Accepted: 5},
		},
	}}
	srv := New(&Config{}, logger.NewNop(), stub)

	w := httptest.NewRecorder()
	srv.router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/v1/statistic", nil))

	if w.Code != http.StatusOK {
		t.Fatalf("expected status %d, got %d", http.StatusOK, w.Code)
	}

	var resp struct {
		Malformed uint64 `json:"malformed"`
		Schemes   map[string]struct {
			Exchanges     uint64  `json:"exchanges"`
			Undetected    uint64  `json:"undetected"`
			DetectionRate float64 `json:"detection_rate"`
		} `json:"schemes"`
	}
	if err := json.Unmarshal(w.Body.Bytes(), &resp); err != nil {
		t.Fatal(err)
	}

	if resp.Malformed != 2 {
		t.Errorf("expected 2 malformed, got %d", resp.Malformed)
	}
	rates := map[string]float64{}
	for name, st := range resp.Schemes {
		rates[name] = st.DetectionRate
	}
	expected := map[string]float64{entity.SchemeNameParity1D: 0.75, entity.SchemeNameCRC: 1}
	if !reflect.DeepEqual(rates, expected) {
		t.Errorf("expected rates %v, got %v", expected, rates)
	}
	if resp.Schemes[entity.SchemeNameParity1D].Exchanges != 10 {
		t.Errorf("embedded counters missing: %s", w.Body.String())
	}
}
