// Package mcp exposes the bug worklist over the Model Context Protocol so
// agent tooling can trigger runs and read the digest without shelling out.
package mcp

import (
	"context"
	"fmt"
	"sync"

	sdkmcp "github.com/modelcontextprotocol/go-sdk/mcp"

	"bugdesk/adapters/feed"
	"bugdesk/adapters/store"
	"bugdesk/internal/board"
	"bugdesk/internal/engine"
)

// Server wraps the MCP SDK server around one workbook. Pipeline runs are
// serialized: the engine owns the snapshot for the duration of a run.
type Server struct {
	MCPServer *sdkmcp.Server

	open    func() (store.TabStore, error)
	persist func(ts store.TabStore) error

	mu sync.Mutex
}

// NewServer creates an MCP server backed by the .xlsx workbook at path.
func NewServer(workbook string) *Server {
	return newServer(
		func() (store.TabStore, error) { return store.OpenXLSX(workbook) },
		func(ts store.TabStore) error {
			x, ok := ts.(*store.XLSXStore)
			if !ok {
				return nil
			}
			defer x.Close()
			return x.Save()
		},
	)
}

// NewServerWithStore creates an MCP server over an arbitrary TabStore.
// Used by tests and in-memory deployments; nothing is persisted.
func NewServerWithStore(ts store.TabStore) *Server {
	return newServer(
		func() (store.TabStore, error) { return ts, nil },
		func(store.TabStore) error { return nil },
	)
}

func newServer(open func() (store.TabStore, error), persist func(store.TabStore) error) *Server {
	s := &Server{open: open, persist: persist}
	s.MCPServer = sdkmcp.NewServer(
		&sdkmcp.Implementation{Name: "bugdesk", Version: "dev"},
		nil,
	)
	s.registerTools()
	return s
}

// Run serves MCP over the given transport until ctx ends.
func (s *Server) Run(ctx context.Context, t sdkmcp.Transport) error {
	return s.MCPServer.Run(ctx, t)
}

func (s *Server) registerTools() {
	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "run_pipeline",
		Description: "Run the full daily pipeline (merge, classify, reorder, distribute, purge) against the workbook and persist the result.",
	}, s.handleRunPipeline)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "get_digest",
		Description: "Read the current top-priority bugs per team, most urgent first.",
	}, s.handleGetDigest)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "classify",
		Description: "Classify a failure-mode text onto a team (GL, NT, PP) or report it unassigned.",
	}, s.handleClassify)

	sdkmcp.AddTool(s.MCPServer, &sdkmcp.Tool{
		Name:        "tab_status",
		Description: "Report record counts per workbook tab.",
	}, s.handleTabStatus)
}

// --- Tool input/output types ---

type runPipelineInput struct {
	Source     string `json:"source,omitempty" jsonschema:"path to a scraped defect feed (.csv or .xlsx); empty runs without new input"`
	Reclassify bool   `json:"reclassify,omitempty" jsonschema:"re-run the classifier over already-assigned records"`
	DryRun     bool   `json:"dry_run,omitempty" jsonschema:"run everything but do not persist the workbook"`
}

type runPipelineOutput struct {
	Added      int    `json:"added"`
	Updated    int    `json:"updated"`
	Classified int    `json:"classified"`
	Skipped    int    `json:"skipped"`
	Conflicts  int    `json:"conflicts"`
	Summary    string `json:"summary"`
}

type digestEntry struct {
	ID          string `json:"id"`
	Priority    int    `json:"priority,omitempty"`
	FailureMode string `json:"failure_mode,omitempty"`
}

type getDigestInput struct {
	Size int `json:"size,omitempty" jsonschema:"entries per team (default 25)"`
}

type getDigestOutput struct {
	Teams map[string][]digestEntry `json:"teams"`
}

type classifyInput struct {
	FailureMode string `json:"failure_mode" jsonschema:"free-text failure mode to classify"`
}

type classifyOutput struct {
	Team       string `json:"team,omitempty"`
	Unassigned bool   `json:"unassigned,omitempty"`
}

type tabStatusInput struct{}

type tabCount struct {
	Tab     string `json:"tab"`
	Records int    `json:"records"`
}

type tabStatusOutput struct {
	Tabs []tabCount `json:"tabs"`
}

// --- Handlers ---

func (s *Server) handleRunPipeline(_ context.Context, _ *sdkmcp.CallToolRequest, input runPipelineInput) (*sdkmcp.CallToolResult, runPipelineOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.open()
	if err != nil {
		return nil, runPipelineOutput{}, err
	}

	snap, err := store.Load(ts)
	if err != nil {
		return nil, runPipelineOutput{}, err
	}

	var source []board.Record
	var feedBad []*board.InvalidRecordError
	if input.Source != "" {
		src, err := feed.Open(input.Source)
		if err != nil {
			return nil, runPipelineOutput{}, err
		}
		source, feedBad, err = src.Records()
		if err != nil {
			return nil, runPipelineOutput{}, err
		}
	}

	runRep, err := engine.Run(snap, source, engine.Options{Reclassify: input.Reclassify})
	if err != nil {
		return nil, runPipelineOutput{}, err
	}
	runRep.Skipped = append(feedBad, runRep.Skipped...)

	if !input.DryRun {
		if err := store.Save(ts, snap); err != nil {
			return nil, runPipelineOutput{}, err
		}
		if err := s.persist(ts); err != nil {
			return nil, runPipelineOutput{}, err
		}
	}

	return nil, runPipelineOutput{
		Added:      runRep.Added,
		Updated:    runRep.Updated,
		Classified: runRep.Classified,
		Skipped:    len(runRep.Skipped),
		Conflicts:  len(runRep.Conflicts),
		Summary:    runRep.Summary(),
	}, nil
}

func (s *Server) handleGetDigest(_ context.Context, _ *sdkmcp.CallToolRequest, input getDigestInput) (*sdkmcp.CallToolResult, getDigestOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.open()
	if err != nil {
		return nil, getDigestOutput{}, err
	}
	snap, err := store.Load(ts)
	if err != nil {
		return nil, getDigestOutput{}, err
	}

	digest, err := engine.Digest(snap, input.Size)
	if err != nil {
		return nil, getDigestOutput{}, err
	}

	out := getDigestOutput{Teams: make(map[string][]digestEntry, len(digest))}
	for team, records := range digest {
		entries := make([]digestEntry, 0, len(records))
		for _, r := range records {
			entries = append(entries, digestEntry{ID: r.ID, Priority: r.Priority, FailureMode: r.FailureMode})
		}
		out.Teams[string(team)] = entries
	}
	return nil, out, nil
}

func (s *Server) handleClassify(_ context.Context, _ *sdkmcp.CallToolRequest, input classifyInput) (*sdkmcp.CallToolResult, classifyOutput, error) {
	if input.FailureMode == "" {
		return nil, classifyOutput{}, fmt.Errorf("mcp: failure_mode is required")
	}
	team := engine.Classify(input.FailureMode)
	if team == board.Unassigned {
		return nil, classifyOutput{Unassigned: true}, nil
	}
	return nil, classifyOutput{Team: string(team)}, nil
}

func (s *Server) handleTabStatus(_ context.Context, _ *sdkmcp.CallToolRequest, _ tabStatusInput) (*sdkmcp.CallToolResult, tabStatusOutput, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	ts, err := s.open()
	if err != nil {
		return nil, tabStatusOutput{}, err
	}
	snap, err := store.Load(ts)
	if err != nil {
		return nil, tabStatusOutput{}, err
	}

	out := tabStatusOutput{}
	for _, name := range board.RequiredTabs() {
		tab, err := snap.Tab(name)
		if err != nil {
			return nil, tabStatusOutput{}, err
		}
		out.Tabs = append(out.Tabs, tabCount{Tab: name, Records: len(tab.Records)})
	}
	return nil, out, nil
}
