package registry

import (
	"context"
	"fmt"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func studyJSON(nctID string) string {
	return fmt.Sprintf(`{
		"protocolSection": {
			"identificationModule": {"nctId": %q, "briefTitle": "Trial %s"},
			"statusModule": {"overallStatus": "RECRUITING"},
			"designModule": {"phases": ["PHASE2"]},
			"contactsLocationsModule": {"locations": [{"facility": "General Hospital", "city": "Boston", "state": "Massachusetts"}]},
			"sponsorCollaboratorsModule": {"leadSponsor": {"name": "Example Oncology Group"}}
		}
	}`, nctID, nctID)
}

func studiesBody(studies ...string) string {
	return `{"studies":[` + strings.Join(studies, ",") + `]}`
}

type recordedRequest struct {
	locn string
	cond string
}

func newTestClient(t *testing.T, handler http.HandlerFunc) *Client {
	t.Helper()
	srv := httptest.NewServer(handler)
	t.Cleanup(srv.Close)
	return NewClient(srv.URL, 2*time.Second)
}

func TestSearchLocalHit(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		q := r.URL.Query()
		requests = append(requests, recordedRequest{locn: q.Get("query.locn"), cond: q.Get("query.cond")})
		assert.Equal(t, "/studies", r.URL.Path)
		assert.Equal(t, "RECRUITING", q.Get("filter.overallStatus"))
		assert.Equal(t, "10", q.Get("pageSize"))
		fmt.Fprint(w, studiesBody(studyJSON("NCT00000001"), studyJSON("NCT00000002")))
	})

	trials, degraded := client.Search(context.Background(), "breast cancer", "Boston Massachusetts")

	assert.False(t, degraded)
	require.Len(t, trials, 2)
	require.Len(t, requests, 1, "a local hit must not trigger the fallback")
	assert.Equal(t, "breast cancer", requests[0].cond)
	assert.Equal(t, "Boston, MA", requests[0].locn)
	for _, trial := range trials {
		assert.False(t, trial.IsNationwide)
	}
	assert.Equal(t, "Trial NCT00000001", trials[0].Title)
	assert.Equal(t, "Phase 2", trials[0].Phase)
	assert.Equal(t, "Recruiting", trials[0].Status)
	assert.Equal(t, "Boston, Massachusetts", trials[0].Location)
	assert.Equal(t, "https://clinicaltrials.gov/study/NCT00000001", trials[0].Link)
}

func TestSearchNationwideFallbackOnEmpty(t *testing.T) {
	var requests []recordedRequest
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		locn := r.URL.Query().Get("query.locn")
		requests = append(requests, recordedRequest{locn: locn})
		if locn != "" {
			fmt.Fprint(w, studiesBody())
			return
		}
		fmt.Fprint(w, studiesBody(studyJSON("NCT00000003")))
	})

	trials, degraded := client.Search(context.Background(), "lung cancer", "Siloam Springs Arkansas")

	assert.False(t, degraded)
	require.Len(t, trials, 1)
	require.Len(t, requests, 2, "exactly one nationwide re-query")
	assert.Equal(t, "Siloam Springs, AR", requests[0].locn)
	assert.Equal(t, "", requests[1].locn)
	for _, trial := range trials {
		assert.True(t, trial.IsNationwide)
	}
}

func TestSearchNationwideFallbackOnError(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		if r.URL.Query().Get("query.locn") != "" {
			w.WriteHeader(http.StatusBadGateway)
			return
		}
		fmt.Fprint(w, studiesBody(studyJSON("NCT00000004")))
	})

	trials, degraded := client.Search(context.Background(), "lung cancer", "Boston Massachusetts")

	assert.False(t, degraded)
	require.Len(t, trials, 1)
	assert.Equal(t, 2, requests)
	assert.True(t, trials[0].IsNationwide)
}

func TestSearchDegradedWhenBothAttemptsFail(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	trials, degraded := client.Search(context.Background(), "lung cancer", "Boston Massachusetts")

	assert.True(t, degraded)
	assert.Empty(t, trials)
	assert.Equal(t, 2, requests, "a single fallback attempt, not a retry loop")
}

func TestSearchNoLocationNoFallback(t *testing.T) {
	var requests int
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests++
		assert.Empty(t, r.URL.Query().Get("query.locn"))
		fmt.Fprint(w, studiesBody())
	})

	trials, degraded := client.Search(context.Background(), "breast cancer", "")

	assert.False(t, degraded)
	assert.Empty(t, trials)
	assert.Equal(t, 1, requests)
}

func TestSearchNoLocationUpstreamFailure(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusServiceUnavailable)
	})

	trials, degraded := client.Search(context.Background(), "breast cancer", "")

	assert.True(t, degraded)
	assert.Empty(t, trials)
}

func TestSearchSkipsMalformedRecords(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		body := studiesBody(
			studyJSON("NCT00000005"),
			`{"protocolSection": "not an object"}`,
			`{"protocolSection": {"identificationModule": {"briefTitle": "no id"}}}`,
			studyJSON("NCT00000006"),
		)
		fmt.Fprint(w, body)
	})

	trials, degraded := client.Search(context.Background(), "breast cancer", "Boston Massachusetts")

	assert.False(t, degraded)
	require.Len(t, trials, 2)
	assert.Equal(t, "NCT00000005", trials[0].NCTID)
	assert.Equal(t, "NCT00000006", trials[1].NCTID)
}

func TestSearchCapsResultSetAtPageSize(t *testing.T) {
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		var studies []string
		for i := 0; i < 15; i++ {
			studies = append(studies, studyJSON(fmt.Sprintf("NCT%08d", i)))
		}
		fmt.Fprint(w, studiesBody(studies...))
	})

	trials, degraded := client.Search(context.Background(), "breast cancer", "Boston Massachusetts")

	assert.False(t, degraded)
	assert.Len(t, trials, 10)
}

func TestSearchTimeoutFeedsFallback(t *testing.T) {
	var requests atomic.Int32
	client := newTestClient(t, func(w http.ResponseWriter, r *http.Request) {
		requests.Add(1)
		if r.URL.Query().Get("query.locn") != "" {
			time.Sleep(300 * time.Millisecond)
		}
		fmt.Fprint(w, studiesBody(studyJSON("NCT00000007")))
	})
	client.timeout = 50 * time.Millisecond
	client.httpClient.Timeout = 50 * time.Millisecond

	trials, degraded := client.Search(context.Background(), "lung cancer", "Boston Massachusetts")

	assert.False(t, degraded)
	require.Len(t, trials, 1)
	assert.True(t, trials[0].IsNationwide)
	assert.Equal(t, int32(2), requests.Load())
}
