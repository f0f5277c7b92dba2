package web

import (
	"testing"
	"time"

	"github.com/JonMunkholm/cookbook/internal/recipe"
)

func TestPreviewStoreTakeOnce(t *testing.T) {
	ps := newPreviewStore(time.Minute)
	defer ps.stop()

	token := ps.put([]recipe.Recipe{{Title: "Toast"}}, nil)

	sess, ok := ps.take(token)
	if !ok {
		t.Fatal("take() failed for a fresh token")
	}
	if len(sess.recipes) != 1 || sess.recipes[0].Title != "Toast" {
		t.Errorf("take() returned %+v, want the stored batch", sess.recipes)
	}

	if _, ok := ps.take(token); ok {
		t.Error("take() succeeded twice for the same token")
	}
}

func TestPreviewStoreExpiry(t *testing.T) {
	ps := newPreviewStore(time.Nanosecond)
	defer ps.stop()

	token := ps.put([]recipe.Recipe{{Title: "Toast"}}, nil)
	time.Sleep(time.Millisecond)

	if _, ok := ps.take(token); ok {
		t.Error("take() succeeded for an expired token")
	}
}

func TestPreviewStoreUnknownToken(t *testing.T) {
	ps := newPreviewStore(time.Minute)
	defer ps.stop()

	if _, ok := ps.take("no-such-token"); ok {
		t.Error("take() succeeded for an unknown token")
	}
}
