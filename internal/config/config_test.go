package config

import "testing"

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Server.Addr != ":8080" {
		t.Errorf("Expected default addr :8080, got %s", cfg.Server.Addr)
	}
	if cfg.Storage.Driver != "postgres" {
		t.Errorf("Expected default storage driver postgres, got %s", cfg.Storage.Driver)
	}
	if cfg.Engine.ScalePercent != 50 {
		t.Errorf("Expected default scale percent 50, got %d", cfg.Engine.ScalePercent)
	}
}

func TestLoad_EnvOverride(t *testing.T) {
	t.Setenv("PLATECAP_STORAGE_DRIVER", "memory")
	t.Setenv("PLATECAP_ENGINE_SCALE_PERCENT", "25")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load failed: %v", err)
	}

	if cfg.Storage.Driver != "memory" {
		t.Errorf("Expected storage driver memory, got %s", cfg.Storage.Driver)
	}
	if cfg.Engine.ScalePercent != 25 {
		t.Errorf("Expected scale percent 25, got %d", cfg.Engine.ScalePercent)
	}
}

func TestLoad_RejectsUnknownDriver(t *testing.T) {
	t.Setenv("PLATECAP_STORAGE_DRIVER", "cassandra")

	if _, err := Load(""); err == nil {
		t.Fatal("Expected an error for an unknown storage driver")
	}
}

func TestLoad_RejectsBadScalePercent(t *testing.T) {
	t.Setenv("PLATECAP_ENGINE_SCALE_PERCENT", "0")

	if _, err := Load(""); err == nil {
		t.Fatal("Expected an error for a zero scale percent")
	}
}

func TestDatabaseDSN(t *testing.T) {
	d := DatabaseConfig{
		Host: "db", Port: 5433, User: "u", Password: "p", Name: "captures", SSLMode: "disable",
	}
	want := "host=db port=5433 user=u password=p dbname=captures sslmode=disable"
	if got := d.DSN(); got != want {
		t.Errorf("DSN() = %q, want %q", got, want)
	}
}
