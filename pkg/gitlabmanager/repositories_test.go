package gitlabmanager

import (
	"context"
	"testing"

	"github.com/TsafasN/gitlab-manager/pkg/errors"
)

func TestCreateBranch(t *testing.T) {
	branches := newFakeBranches("main")
	c := newTestClient(apiSet{branches: branches})
	ctx := context.Background()

	b, err := c.Repositories.CreateBranch(ctx, ProjectID(1), "feature/login", "main")
	if err != nil {
		t.Fatalf("CreateBranch error: %v", err)
	}
	if b.Name != "feature/login" {
		t.Errorf("Name = %q", b.Name)
	}

	// Existing branch conflicts
	_, err = c.Repositories.CreateBranch(ctx, ProjectID(1), "feature/login", "main")
	if !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("expected CONFLICT, got %v", err)
	}

	// Unknown source ref
	_, err = c.Repositories.CreateBranch(ctx, ProjectID(1), "feature/other", "no-such-ref")
	if !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("expected NOT_FOUND, got %v", err)
	}
}

func TestDeleteBranch(t *testing.T) {
	branches := newFakeBranches("main", "old-branch")
	c := newTestClient(apiSet{branches: branches})
	ctx := context.Background()

	if err := c.Repositories.DeleteBranch(ctx, ProjectID(1), "old-branch"); err != nil {
		t.Fatalf("DeleteBranch error: %v", err)
	}
	if err := c.Repositories.DeleteBranch(ctx, ProjectID(1), "old-branch"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second delete: expected NOT_FOUND, got %v", err)
	}
}

func TestListBranches(t *testing.T) {
	branches := newFakeBranches("main", "develop", "feature/x")
	c := newTestClient(apiSet{branches: branches})

	list, err := c.Repositories.ListBranches(context.Background(), ProjectID(1), "")
	if err != nil {
		t.Fatalf("ListBranches error: %v", err)
	}
	if len(list) != 3 {
		t.Errorf("expected 3 branches, got %d", len(list))
	}
}

func TestBranchValidation(t *testing.T) {
	branches := newFakeBranches("main")
	c := newTestClient(apiSet{branches: branches})
	ctx := context.Background()

	if _, err := c.Repositories.CreateBranch(ctx, ProjectID(1), "bad name", "main"); err == nil {
		t.Error("branch name with space should be rejected")
	}
	if _, err := c.Repositories.CreateBranch(ctx, ProjectID(1), "ok", ""); err == nil {
		t.Error("empty ref should be rejected")
	}
	if err := c.Repositories.DeleteBranch(ctx, ProjectID(1), ""); err == nil {
		t.Error("empty branch name should be rejected")
	}
	if branches.calls != 0 {
		t.Error("invalid inputs must not reach the network")
	}
}

func TestCreateTag(t *testing.T) {
	tags := newFakeTags()
	c := newTestClient(apiSet{tags: tags})
	ctx := context.Background()

	tag, err := c.Repositories.CreateTag(ctx, ProjectID(1), "v1.0.0", "main", "first release")
	if err != nil {
		t.Fatalf("CreateTag error: %v", err)
	}
	if tag.Name != "v1.0.0" || tag.Message != "first release" {
		t.Errorf("got %+v", tag)
	}

	_, err = c.Repositories.CreateTag(ctx, ProjectID(1), "v1.0.0", "main", "")
	if !errors.Is(err, errors.ErrCodeConflict) {
		t.Errorf("duplicate tag: expected CONFLICT, got %v", err)
	}
}

func TestDeleteTag(t *testing.T) {
	tags := newFakeTags("v1.0.0")
	c := newTestClient(apiSet{tags: tags})
	ctx := context.Background()

	if err := c.Repositories.DeleteTag(ctx, ProjectID(1), "v1.0.0"); err != nil {
		t.Fatalf("DeleteTag error: %v", err)
	}
	if err := c.Repositories.DeleteTag(ctx, ProjectID(1), "v1.0.0"); !errors.Is(err, errors.ErrCodeNotFound) {
		t.Errorf("second delete: expected NOT_FOUND, got %v", err)
	}
}

func TestListTags(t *testing.T) {
	tags := newFakeTags("v1.0.0", "v1.1.0")
	c := newTestClient(apiSet{tags: tags})

	list, err := c.Repositories.ListTags(context.Background(), ProjectID(1), "")
	if err != nil {
		t.Fatalf("ListTags error: %v", err)
	}
	if len(list) != 2 {
		t.Errorf("expected 2 tags, got %d", len(list))
	}
}
