// Package monitoring serves an engine over HTTP so that an external
// presentation layer can drive it and display its state.
package monitoring

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"log"
	"net"
	"net/http"
	"os"
	"runtime/pprof"
	"strconv"
	"time"

	"github.com/google/pprof/profile"
	"github.com/gorilla/mux"
	"github.com/shirou/gopsutil/process"
	"github.com/syifan/goseth"

	"github.com/sarchlab/vmsim/mem/vm"
	"github.com/sarchlab/vmsim/mem/vm/mmu"
	"github.com/sarchlab/vmsim/monitoring/web"
	"github.com/sarchlab/vmsim/sim/hooking"
)

// Monitor turns an engine into a server.
type Monitor struct {
	engine          *mmu.Engine
	eventLog        *mmu.EventLog
	outcomes        *hooking.TagCountTracer
	portNumber      int
	profileDuration time.Duration
}

// NewMonitor creates a new Monitor
func NewMonitor() *Monitor {
	return &Monitor{profileDuration: time.Second}
}

// WithPortNumber sets the port number of the monitor.
func (m *Monitor) WithPortNumber(portNumber int) *Monitor {
	if portNumber != 0 && portNumber < 1000 {
		fmt.Fprintf(os.Stderr,
			"Port number %d is assigned to the monitoring server, "+
				"which is not allowed. Using a random port instead.\n", portNumber)
		portNumber = 0
	}

	m.portNumber = portNumber

	return m
}

// RegisterEngine registers the engine to serve.
func (m *Monitor) RegisterEngine(e *mmu.Engine) {
	m.engine = e
}

// RegisterEventLog registers the log served at /api/log.
func (m *Monitor) RegisterEventLog(l *mmu.EventLog) {
	m.eventLog = l
}

// RegisterOutcomeCounter registers the tag counter served at /api/outcomes.
func (m *Monitor) RegisterOutcomeCounter(t *hooking.TagCountTracer) {
	m.outcomes = t
}

// Router returns the handler of all the monitor endpoints.
func (m *Monitor) Router() http.Handler {
	r := mux.NewRouter()

	r.HandleFunc("/api/snapshot", m.snapshot).Methods(http.MethodGet)
	r.HandleFunc("/api/stats", m.stats).Methods(http.MethodGet)
	r.HandleFunc("/api/now", m.now).Methods(http.MethodGet)
	r.HandleFunc("/api/configure", m.configure).Methods(http.MethodPost)
	r.HandleFunc("/api/translate/{page}", m.translate).Methods(http.MethodPost)
	r.HandleFunc("/api/batch", m.batch).Methods(http.MethodPost)
	r.HandleFunc("/api/reset", m.reset).Methods(http.MethodPost)
	r.HandleFunc("/api/log", m.listLog).Methods(http.MethodGet)
	r.HandleFunc("/api/log", m.clearLog).Methods(http.MethodDelete)
	r.HandleFunc("/api/outcomes", m.listOutcomes).Methods(http.MethodGet)
	r.HandleFunc("/api/component", m.componentDetails).Methods(http.MethodGet)
	r.HandleFunc("/api/resource", m.listResources).Methods(http.MethodGet)
	r.HandleFunc("/api/profile", m.collectProfile).Methods(http.MethodGet)
	r.PathPrefix("/").Handler(http.FileServer(web.GetAssets()))

	return r
}

// StartServer starts serving in the background and returns the port.
func (m *Monitor) StartServer() int {
	actualPort := ":0"
	if m.portNumber > 1000 {
		actualPort = ":" + strconv.Itoa(m.portNumber)
	}

	listener, err := net.Listen("tcp", actualPort)
	dieOnErr(err)

	port := listener.Addr().(*net.TCPAddr).Port

	fmt.Fprintf(os.Stderr, "Monitoring %s with http://localhost:%d\n",
		m.engine.Name(), port)

	go func() {
		err := http.Serve(listener, m.Router())
		dieOnErr(err)
	}()

	return port
}

func (m *Monitor) snapshot(w http.ResponseWriter, _ *http.Request) {
	s, err := m.engine.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, s)
}

type statsRsp struct {
	vm.Statistics
	FaultRate        float64 `json:"fault_rate"`
	HitRatio         float64 `json:"hit_ratio"`
	OccupancyPercent float64 `json:"occupancy_percent"`
}

func (m *Monitor) stats(w http.ResponseWriter, _ *http.Request) {
	s := m.engine.Statistics()

	writeJSON(w, statsRsp{
		Statistics:       s,
		FaultRate:        s.FaultRate(),
		HitRatio:         s.HitRatio(),
		OccupancyPercent: s.OccupancyPercent(),
	})
}

func (m *Monitor) now(w http.ResponseWriter, _ *http.Request) {
	fmt.Fprintf(w, "{\"now\":%.0f}", m.engine.Now())
}

type configureReq struct {
	AddressSpaceSize int    `json:"address_space_size"`
	NumFrames        int    `json:"num_frames"`
	TLBCapacity      int    `json:"tlb_capacity"`
	Policy           string `json:"policy"`
}

func (m *Monitor) configure(w http.ResponseWriter, r *http.Request) {
	req := configureReq{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	policy, err := vm.ParsePolicyKind(req.Policy)
	if err != nil {
		writeError(w, err)
		return
	}

	cfg := mmu.Config{
		AddressSpaceSize: req.AddressSpaceSize,
		NumFrames:        req.NumFrames,
		TLBCapacity:      req.TLBCapacity,
		Policy:           policy,
	}

	if err := m.engine.Configure(cfg); err != nil {
		writeError(w, err)
		return
	}

	m.resetOutcomes()

	writeJSON(w, cfg)
}

func (m *Monitor) translate(w http.ResponseWriter, r *http.Request) {
	page, err := mmu.ParseHexAddress(mux.Vars(r)["page"])
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	res, err := m.engine.Translate(r.Context(), page)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, res)
}

type batchReq struct {
	Base  string `json:"base"`
	Pages string `json:"pages"`
}

func (m *Monitor) batch(w http.ResponseWriter, r *http.Request) {
	req := batchReq{}
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		writeBadRequest(w, err)
		return
	}

	base, err := mmu.ParseHexAddress(req.Base)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	pages, err := mmu.ParseHexPageList(req.Pages)
	if err != nil {
		writeBadRequest(w, err)
		return
	}

	br, err := m.engine.LoadBatch(r.Context(), base, pages)
	if err != nil {
		writeError(w, err)
		return
	}

	writeJSON(w, br)
}

func (m *Monitor) reset(w http.ResponseWriter, _ *http.Request) {
	if err := m.engine.Reset(); err != nil {
		writeError(w, err)
		return
	}

	m.resetOutcomes()

	w.WriteHeader(http.StatusNoContent)
}

func (m *Monitor) listLog(w http.ResponseWriter, r *http.Request) {
	if m.eventLog == nil {
		http.Error(w, "event log not registered", http.StatusNotFound)
		return
	}

	if r.URL.Query().Get("format") == "text" {
		_, err := w.Write([]byte(m.eventLog.Export()))
		dieOnErr(err)

		return
	}

	writeJSON(w, m.eventLog.Filter(r.URL.Query().Get("filter")))
}

func (m *Monitor) clearLog(w http.ResponseWriter, _ *http.Request) {
	if m.eventLog == nil {
		http.Error(w, "event log not registered", http.StatusNotFound)
		return
	}

	m.eventLog.Clear()
	w.WriteHeader(http.StatusNoContent)
}

func (m *Monitor) listOutcomes(w http.ResponseWriter, _ *http.Request) {
	if m.outcomes == nil {
		http.Error(w, "outcome counter not registered", http.StatusNotFound)
		return
	}

	counts := make(map[string]uint64)
	for _, name := range m.outcomes.GetTagNames() {
		counts[name] = m.outcomes.GetTagCount(name)
	}

	writeJSON(w, counts)
}

func (m *Monitor) resetOutcomes() {
	if m.outcomes != nil {
		m.outcomes.Reset()
	}
}

func (m *Monitor) componentDetails(w http.ResponseWriter, _ *http.Request) {
	s, err := m.engine.Snapshot()
	if err != nil {
		writeError(w, err)
		return
	}

	serializer := goseth.NewSerializer()
	serializer.SetRoot(&s)
	serializer.SetMaxDepth(2)
	err = serializer.Serialize(w)

	dieOnErr(err)
}

type resourceRsp struct {
	CPUPercent float64 `json:"cpu_percent"`
	MemorySize uint64  `json:"memory_size"`
}

func (m *Monitor) listResources(w http.ResponseWriter, _ *http.Request) {
	pid := os.Getpid()
	process, err := process.NewProcess(int32(pid))
	dieOnErr(err)

	cpuPercent, err := process.CPUPercent()
	dieOnErr(err)

	memorySize, err := process.MemoryInfo()
	dieOnErr(err)

	writeJSON(w, resourceRsp{
		CPUPercent: cpuPercent,
		MemorySize: memorySize.RSS,
	})
}

func (m *Monitor) collectProfile(w http.ResponseWriter, _ *http.Request) {
	buf := bytes.NewBuffer(nil)

	err := pprof.StartCPUProfile(buf)
	if err != nil {
		http.Error(w, err.Error(), http.StatusConflict)
		return
	}

	time.Sleep(m.profileDuration)

	pprof.StopCPUProfile()

	prof, err := profile.ParseData(buf.Bytes())
	dieOnErr(err)

	writeJSON(w, prof)
}

// StatusCode maps an engine error to an HTTP status code.
func StatusCode(err error) int {
	switch {
	case errors.Is(err, vm.ErrOutOfRangeAddress),
		errors.Is(err, mmu.ErrMalformedPageList):
		return http.StatusBadRequest
	case errors.Is(err, vm.ErrInvalidConfiguration):
		return http.StatusConflict
	case errors.Is(err, context.Canceled),
		errors.Is(err, context.DeadlineExceeded):
		return http.StatusServiceUnavailable
	default:
		return http.StatusInternalServerError
	}
}

func writeError(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), StatusCode(err))
}

func writeBadRequest(w http.ResponseWriter, err error) {
	http.Error(w, err.Error(), http.StatusBadRequest)
}

func writeJSON(w http.ResponseWriter, v any) {
	bytes, err := json.Marshal(v)
	dieOnErr(err)

	w.Header().Set("Content-Type", "application/json")

	_, err = w.Write(bytes)
	dieOnErr(err)
}

func dieOnErr(err error) {
	if err != nil {
		log.Panic(err)
	}
}
