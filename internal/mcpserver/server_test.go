package mcpserver

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"strings"
	"testing"
	"time"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/starford/portfolio/internal/models"
	"github.com/starford/portfolio/internal/portfolio"
	"github.com/starford/portfolio/internal/testutil"
)

func testServer(t *testing.T) (*Server, *testutil.ProjectStore, *testutil.SkillStore) {
	t.Helper()

	projects := &testutil.ProjectStore{Projects: []models.Project{
		{Title: "MOVIEFLIX", Category: "Web", Featured: true},
		{Title: "Cafe Local", Category: "Web"},
		{Title: "CLI tool", Category: "Tooling"},
	}}
	skills := &testutil.SkillStore{Skills: []models.Skill{
		{Name: "React", Category: "Frontend"},
		{Name: "Node.js", Category: "Backend"},
	}}

	srv := New(portfolio.NewService(projects, skills), ContactInfo{
		SiteName: "Portfolio Dev",
		Email:    "owner@example.com",
		Phone:    "+33 6 00 00 00 00",
	}, "test")
	return srv, projects, skills
}

func callTool(t *testing.T, srv *Server, name string, args map[string]interface{}) *mcp.CallToolResult {
	t.Helper()
	ctx := context.Background()
	req := mcp.CallToolRequest{}
	req.Method = "tools/call"
	req.Params.Name = name
	req.Params.Arguments = args

	var result *mcp.CallToolResult
	var err error

	switch name {
	case "list_projects":
		result, err = srv.listProjects(ctx, req)
	case "list_skills":
		result, err = srv.listSkills(ctx, req)
	case "get_contact_info":
		result, err = srv.getContactInfo(ctx, req)
	default:
		t.Fatalf("unknown tool: %s", name)
	}

	if err != nil {
		t.Fatalf("tool %s error: %v", name, err)
	}
	return result
}

func resultText(r *mcp.CallToolResult) string {
	if len(r.Content) > 0 {
		if tc, ok := r.Content[0].(mcp.TextContent); ok {
			return tc.Text
		}
	}
	return ""
}

func titles(t *testing.T, r *mcp.CallToolResult) []string {
	t.Helper()
	var projects []models.Project
	if err := json.Unmarshal([]byte(resultText(r)), &projects); err != nil {
		t.Fatalf("decode projects: %v", err)
	}
	out := make([]string, len(projects))
	for i, p := range projects {
		out[i] = p.Title
	}
	return out
}

func TestListProjects(t *testing.T) {
	srv, _, _ := testServer(t)

	got := titles(t, callTool(t, srv, "list_projects", map[string]interface{}{}))
	if len(got) != 3 {
		t.Fatalf("projects = %v", got)
	}
}

func TestListProjectsFilters(t *testing.T) {
	srv, _, _ := testServer(t)

	got := titles(t, callTool(t, srv, "list_projects", map[string]interface{}{"featured_only": true}))
	if len(got) != 1 || got[0] != "MOVIEFLIX" {
		t.Errorf("featured = %v", got)
	}

	got = titles(t, callTool(t, srv, "list_projects", map[string]interface{}{"category": "tooling"}))
	if len(got) != 1 || got[0] != "CLI tool" {
		t.Errorf("category = %v", got)
	}
}

func TestListProjectsEmpty(t *testing.T) {
	srv, projects, _ := testServer(t)
	projects.Projects = nil

	r := callTool(t, srv, "list_projects", map[string]interface{}{})
	if text := resultText(r); text != "[]" {
		t.Errorf("empty list = %q, want []", text)
	}
}

func TestListProjectsStoreError(t *testing.T) {
	srv, projects, _ := testServer(t)
	projects.Err = errors.New("db down")

	r := callTool(t, srv, "list_projects", map[string]interface{}{})
	if !r.IsError {
		t.Error("expected tool error")
	}
}

func TestListSkills(t *testing.T) {
	srv, _, _ := testServer(t)

	r := callTool(t, srv, "list_skills", map[string]interface{}{"category": "backend"})
	var skills []models.Skill
	if err := json.Unmarshal([]byte(resultText(r)), &skills); err != nil {
		t.Fatal(err)
	}
	if len(skills) != 1 || skills[0].Name != "Node.js" {
		t.Errorf("skills = %+v", skills)
	}
}

func TestContactInfo(t *testing.T) {
	srv, _, _ := testServer(t)

	text := resultText(callTool(t, srv, "get_contact_info", nil))
	for _, want := range []string{"owner@example.com", "+33 6 00 00 00 00", "2-4 hours", "within 48h"} {
		if !strings.Contains(text, want) {
			t.Errorf("contact info missing %q:\n%s", want, text)
		}
	}

	contents, err := srv.readContactResource(context.Background(), mcp.ReadResourceRequest{})
	if err != nil {
		t.Fatal(err)
	}
	tc, ok := contents[0].(mcp.TextResourceContents)
	if !ok || tc.URI != contactURI || tc.Text != text {
		t.Errorf("resource = %+v", contents[0])
	}
}

func TestContactInfoWithoutPhone(t *testing.T) {
	text := ContactInfo{SiteName: "x", Email: "a@b.co"}.Markdown()
	if strings.Contains(text, "Phone") {
		t.Errorf("unexpected phone line:\n%s", text)
	}
}

func TestServeStopsOnCancel(t *testing.T) {
	srv, _, _ := testServer(t)

	in, w := io.Pipe()
	defer w.Close()

	ctx, cancel := context.WithCancel(context.Background())
	done := make(chan error, 1)
	go func() { done <- srv.Serve(ctx, in, io.Discard) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve after cancel = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return after cancel")
	}
}

func TestServeStopsOnEOF(t *testing.T) {
	srv, _, _ := testServer(t)

	done := make(chan error, 1)
	go func() { done <- srv.Serve(context.Background(), strings.NewReader(""), io.Discard) }()

	select {
	case err := <-done:
		if err != nil {
			t.Errorf("serve on EOF = %v, want nil", err)
		}
	case <-time.After(3 * time.Second):
		t.Fatal("serve did not return on EOF")
	}
}
