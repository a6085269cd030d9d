package testutil

import (
	"embed"
)

//go:embed fixtures/*
var fixturesFS embed.FS

// LoadFixture loads a fixture file by name.
func LoadFixture(name string) ([]byte, error) {
	return fixturesFS.ReadFile("fixtures/" + name)
}

// ValidInstanceEnv returns a complete instance.env fixture.
func ValidInstanceEnv() ([]byte, error) {
	return LoadFixture("valid_instance.env")
}

// CorruptInstanceEnv returns an instance.env fixture missing required keys.
func CorruptInstanceEnv() ([]byte, error) {
	return LoadFixture("corrupt_instance.env")
}

// SampleConfigTOML returns a config.toml fixture.
func SampleConfigTOML() ([]byte, error) {
	return LoadFixture("config.toml")
}
