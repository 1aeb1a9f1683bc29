package di

import (
	"context"
	"database/sql"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/uptrace/bun"
	"github.com/uptrace/bun/dialect/sqlitedialect"

	"github.com/goliatone/go-publisher/internal/adapters/memory"
	"github.com/goliatone/go-publisher/internal/runtimeconfig"
)

func testConfig() runtimeconfig.Config {
	cfg := runtimeconfig.DefaultConfig()
	cfg.Logging.Enabled = false
	return cfg
}

func TestNewContainerBuildsPipeline(t *testing.T) {
	c, err := NewContainer(testConfig())
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer c.Close()

	if c.PublishService() == nil {
		t.Fatal("expected publish service wired")
	}
	if c.Loader() == nil {
		t.Fatal("expected document loader wired")
	}
	if c.Planner() == nil || c.Raster() == nil || c.Differ() == nil {
		t.Fatal("expected pipeline services wired")
	}
	if c.History() != nil {
		t.Fatal("history should stay unwired when disabled")
	}
}

func TestNewContainerRejectsInvalidConfig(t *testing.T) {
	cfg := testConfig()
	cfg.Watcher.Interval = 0

	if _, err := NewContainer(cfg); err == nil {
		t.Fatal("expected config validation error")
	}
}

func TestNewContainerInjectedDestination(t *testing.T) {
	driver := memory.New()
	c, err := NewContainer(testConfig(), WithDestination(driver))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer c.Close()

	if c.Destination() != driver {
		t.Fatal("expected injected destination driver exposed")
	}
}

func TestContainerHistoryWithInjectedDB(t *testing.T) {
	sqldb, err := sql.Open("sqlite3", "file:di_container_test?mode=memory&cache=shared&_fk=1")
	if err != nil {
		t.Fatalf("open sqlite: %v", err)
	}
	db := bun.NewDB(sqldb, sqlitedialect.New())
	t.Cleanup(func() {
		if err := db.Close(); err != nil {
			t.Fatalf("close db: %v", err)
		}
	})

	cfg := testConfig()
	cfg.History.Enabled = true

	c, err := NewContainer(cfg, WithBunDB(db))
	if err != nil {
		t.Fatalf("new container: %v", err)
	}

	if c.History() == nil {
		t.Fatal("expected history service wired when enabled")
	}
	if err := c.EnsureHistorySchema(context.Background()); err != nil {
		t.Fatalf("ensure history schema: %v", err)
	}

	// Close must not touch an injected connection.
	if err := c.Close(); err != nil {
		t.Fatalf("close container: %v", err)
	}
	if err := db.PingContext(context.Background()); err != nil {
		t.Fatalf("injected db should remain open, ping failed: %v", err)
	}
}

func TestContainerNewWatch(t *testing.T) {
	path := filepath.Join(t.TempDir(), "post.md")
	if err := os.WriteFile(path, []byte("# Title\n"), 0o644); err != nil {
		t.Fatalf("write article: %v", err)
	}

	cfg := testConfig()
	cfg.Watcher.Interval = 50 * time.Millisecond

	c, err := NewContainer(cfg)
	if err != nil {
		t.Fatalf("new container: %v", err)
	}
	defer c.Close()

	watch, err := c.NewWatch(path)
	if err != nil {
		t.Fatalf("new watch: %v", err)
	}
	defer watch.Stop()

	state := watch.State()
	if !state.Watching {
		t.Fatal("expected watch running")
	}
	if state.Path == "" {
		t.Fatal("expected watch state to carry the resolved path")
	}
}
