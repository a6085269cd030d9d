package testutil

import (
	"strings"
	"testing"
)

func TestValidInstanceEnv(t *testing.T) {
	data, err := ValidInstanceEnv()
	if err != nil {
		t.Fatalf("ValidInstanceEnv failed: %v", err)
	}

	for _, key := range []string{"APP_PORT", "DB_PORT", "POSTGRES_DB", "SESSION_SECRET", "POSTGRES_PASSWORD"} {
		if !strings.Contains(string(data), key+"=") {
			t.Errorf("fixture missing %s", key)
		}
	}
}

func TestCorruptInstanceEnv(t *testing.T) {
	data, err := CorruptInstanceEnv()
	if err != nil {
		t.Fatalf("CorruptInstanceEnv failed: %v", err)
	}

	if strings.Contains(string(data), "POSTGRES_PASSWORD=") {
		t.Error("corrupt fixture should be missing the password")
	}
}

func TestSampleConfigTOML(t *testing.T) {
	data, err := SampleConfigTOML()
	if err != nil {
		t.Fatalf("SampleConfigTOML failed: %v", err)
	}

	if !strings.Contains(string(data), "app_base_port") {
		t.Error("fixture missing app_base_port")
	}
}

func TestLoadFixture_Missing(t *testing.T) {
	if _, err := LoadFixture("nope.env"); err == nil {
		t.Error("missing fixture should error")
	}
}
