package service

import (
	"context"
	"fmt"
	"testing"

	"github.com/Dan9191/post-service/internal/models"
	"github.com/Dan9191/post-service/internal/repository/repotest"
)

func newPostFixture(t *testing.T) (*PostService, *models.User, *models.User) {
	t.Helper()
	store := repotest.NewStore()
	auth := newAuth(store)
	alice := register(t, auth, "Alice", "0700000001")
	bob := register(t, auth, "Bob", "0700000002")
	return NewPostService(store, quietLogger()), alice, bob
}

func TestPostRoundTrip(t *testing.T) {
	svc, alice, _ := newPostFixture(t)
	ctx := context.Background()

	created, err := svc.CreatePost(ctx, alice, "Hello", "World")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if created.ID == "" || created.UserID != alice.ID {
		t.Fatalf("unexpected post: %+v", created)
	}

	got, err := svc.GetPost(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("GetPost returned error: %v", err)
	}
	if got.Title != "Hello" || got.Description != "World" {
		t.Fatalf("GetPost = %+v", got)
	}

	if _, err := svc.UpdatePost(ctx, alice, created.ID, "Bye", "Moon"); err != nil {
		t.Fatalf("UpdatePost returned error: %v", err)
	}
	got, err = svc.GetPost(ctx, alice, created.ID)
	if err != nil {
		t.Fatalf("GetPost returned error: %v", err)
	}
	if got.Title != "Bye" || got.Description != "Moon" {
		t.Fatalf("update not reflected: %+v", got)
	}

	if err := svc.DeletePost(ctx, alice, created.ID); err != nil {
		t.Fatalf("DeletePost returned error: %v", err)
	}
	if _, err := svc.GetPost(ctx, alice, created.ID); KindOf(err) != KindNotFound {
		t.Fatalf("expected not found after delete, got %v", err)
	}
}

func TestPostsInvisibleToOtherUsers(t *testing.T) {
	svc, alice, bob := newPostFixture(t)
	ctx := context.Background()

	post, err := svc.CreatePost(ctx, alice, "Private", "")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	if _, err := svc.GetPost(ctx, bob, post.ID); KindOf(err) != KindNotFound {
		t.Fatalf("GetPost by non-owner = %v, want not found", err)
	}
	if _, err := svc.UpdatePost(ctx, bob, post.ID, "Hijack", ""); KindOf(err) != KindNotFound {
		t.Fatalf("UpdatePost by non-owner = %v, want not found", err)
	}
	if err := svc.DeletePost(ctx, bob, post.ID); KindOf(err) != KindNotFound {
		t.Fatalf("DeletePost by non-owner = %v, want not found", err)
	}

	posts, err := svc.ListPosts(ctx, bob, 1)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(posts) != 0 {
		t.Fatalf("bob sees %d posts, want 0", len(posts))
	}

	got, err := svc.GetPost(ctx, alice, post.ID)
	if err != nil || got.Title != "Private" {
		t.Fatalf("owner lost access: %+v, %v", got, err)
	}
}

func TestCreatePostRequiresTitle(t *testing.T) {
	svc, alice, _ := newPostFixture(t)

	if _, err := svc.CreatePost(context.Background(), alice, "  ", "body"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error, got %v", err)
	}
	post, err := svc.CreatePost(context.Background(), alice, "Title", "body")
	if err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}
	if _, err := svc.UpdatePost(context.Background(), alice, post.ID, "", "body"); KindOf(err) != KindValidation {
		t.Fatalf("expected validation error on update, got %v", err)
	}
}

func TestListPostsPagination(t *testing.T) {
	svc, alice, bob := newPostFixture(t)
	ctx := context.Background()

	for i := 1; i <= 60; i++ {
		if _, err := svc.CreatePost(ctx, alice, fmt.Sprintf("post %d", i), ""); err != nil {
			t.Fatalf("CreatePost returned error: %v", err)
		}
	}
	if _, err := svc.CreatePost(ctx, bob, "bob's", ""); err != nil {
		t.Fatalf("CreatePost returned error: %v", err)
	}

	page2, err := svc.ListPosts(ctx, alice, 2)
	if err != nil {
		t.Fatalf("ListPosts returned error: %v", err)
	}
	if len(page2) != PageSize {
		t.Fatalf("page 2 has %d posts, want %d", len(page2), PageSize)
	}
	if page2[0].Title != "post 26" || page2[PageSize-1].Title != "post 50" {
		t.Fatalf("page 2 spans %q..%q, want post 26..post 50", page2[0].Title, page2[PageSize-1].Title)
	}

	page4, err := svc.ListPosts(ctx, alice, 4)
	if err != nil {
		t.Fatalf("ListPosts beyond range returned error: %v", err)
	}
	if page4 == nil || len(page4) != 0 {
		t.Fatalf("page 4 = %#v, want empty list", page4)
	}
}
