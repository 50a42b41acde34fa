package config

import (
	"fmt"
	"io/fs"
	"os"

	"gopkg.in/yaml.v3"
)

// GameConfig holds all loaded configurations
type GameConfig struct {
	Physics   *PhysicsConfig
	Abilities *AbilitiesConfig
	Classes   *ClassesConfig
	AI        *AIConfig
	Levels    *LevelsConfig
}

// Loader loads game configuration from YAML files using fs.FS interface
type Loader struct {
	fsys     fs.FS
	basePath string
}

// NewLoader creates a new config loader from filesystem path
func NewLoader(basePath string) *Loader {
	return &Loader{
		fsys:     os.DirFS(basePath),
		basePath: basePath,
	}
}

// NewFSLoader creates a new config loader from fs.FS
func NewFSLoader(fsys fs.FS, basePath string) *Loader {
	return &Loader{
		fsys:     fsys,
		basePath: basePath,
	}
}

// BasePath returns the path the loader was created with
func (l *Loader) BasePath() string {
	return l.basePath
}

func (l *Loader) decode(name string, out any) error {
	data, err := fs.ReadFile(l.fsys, name)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", name, err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", name, err)
	}
	return nil
}

// LoadPhysics loads physics.yaml
func (l *Loader) LoadPhysics() (*PhysicsConfig, error) {
	var cfg PhysicsConfig
	if err := l.decode("physics.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAbilities loads abilities.yaml
func (l *Loader) LoadAbilities() (*AbilitiesConfig, error) {
	var cfg AbilitiesConfig
	if err := l.decode("abilities.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadClasses loads classes.yaml
func (l *Loader) LoadClasses() (*ClassesConfig, error) {
	var cfg ClassesConfig
	if err := l.decode("classes.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAI loads ai.yaml
func (l *Loader) LoadAI() (*AIConfig, error) {
	var cfg AIConfig
	if err := l.decode("ai.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadLevels loads levels.yaml
func (l *Loader) LoadLevels() (*LevelsConfig, error) {
	var cfg LevelsConfig
	if err := l.decode("levels.yaml", &cfg); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadAll loads every configuration file and validates cross references
func (l *Loader) LoadAll() (*GameConfig, error) {
	physics, err := l.LoadPhysics()
	if err != nil {
		return nil, err
	}

	abilities, err := l.LoadAbilities()
	if err != nil {
		return nil, err
	}

	classes, err := l.LoadClasses()
	if err != nil {
		return nil, err
	}

	ai, err := l.LoadAI()
	if err != nil {
		return nil, err
	}

	levels, err := l.LoadLevels()
	if err != nil {
		return nil, err
	}

	cfg := &GameConfig{
		Physics:   physics,
		Abilities: abilities,
		Classes:   classes,
		AI:        ai,
		Levels:    levels,
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}
