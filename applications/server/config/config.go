package config

import (
	"errors"
	"fmt"
	"os"

	"github.com/dustin/go-humanize"
	"gopkg.in/yaml.v2"
)

const (
	CatalogDriverMemory = "memory"
	CatalogDriverSQLite = "sqlite"

	defaultMaxUploadSize   = "10 MB"
	defaultStorageCount    = 1
	defaultStorageCapacity = "100 MB"
)

type Server struct {
	API     Api     `yaml:"api"`
	Storage Storage `yaml:"storage"`
	Catalog Catalog `yaml:"catalog"`
}

type Api struct {
	HTTPAddr      string `yaml:"http_addr"`
	PublicURL     string `yaml:"public_url"`
	MaxUploadSize string `yaml:"max_upload_size"`
}

// Storage configures the blob storages. An empty Token leaves uploads
// disabled; the server still starts and reports the problem per request.
type Storage struct {
	Token    string `yaml:"token"`
	Count    int    `yaml:"count"`
	Capacity string `yaml:"capacity"`
}

type Catalog struct {
	Driver string `yaml:"driver"`
	DSN    string `yaml:"dsn"`
}

// Parse reads the YAML config at path and fills in defaults.
func Parse(path string) (Server, error) {
	var conf Server

	data, err := os.ReadFile(path)
	if err != nil {
		return conf, fmt.Errorf("can't read config file: %w", err)
	}

	if err = yaml.UnmarshalStrict(data, &conf); err != nil {
		return conf, fmt.Errorf("can't parse config file: %w", err)
	}

	conf.setDefaults()

	return conf, nil
}

func (s *Server) setDefaults() {
	if s.API.MaxUploadSize == "" {
		s.API.MaxUploadSize = defaultMaxUploadSize
	}
	if s.Storage.Count == 0 {
		s.Storage.Count = defaultStorageCount
	}
	if s.Storage.Capacity == "" {
		s.Storage.Capacity = defaultStorageCapacity
	}
	if s.Catalog.Driver == "" {
		s.Catalog.Driver = CatalogDriverMemory
	}
}

func (s Server) Validate() error {
	if s.API.HTTPAddr == "" {
		return errors.New("api.http_addr is required")
	}

	if s.API.PublicURL == "" {
		return errors.New("api.public_url is required")
	}

	if _, err := humanize.ParseBytes(s.API.MaxUploadSize); err != nil {
		return fmt.Errorf("api.max_upload_size: %w", err)
	}

	if s.Storage.Count < 0 {
		return fmt.Errorf("storage.count must not be negative, got %d", s.Storage.Count)
	}

	if _, err := humanize.ParseBytes(s.Storage.Capacity); err != nil {
		return fmt.Errorf("storage.capacity: %w", err)
	}

	switch s.Catalog.Driver {
	case CatalogDriverMemory:
	case CatalogDriverSQLite:
		if s.Catalog.DSN == "" {
			return errors.New("catalog.dsn is required for sqlite driver")
		}
	default:
		return fmt.Errorf("unknown catalog.driver %q", s.Catalog.Driver)
	}

	return nil
}

// MaxUploadBytes returns the parsed upload limit, zero if unparsable.
func (a Api) MaxUploadBytes() uint64 {
	n, _ := humanize.ParseBytes(a.MaxUploadSize)
	return n
}

// CapacityBytes returns the parsed per-storage capacity, zero if unparsable.
func (s Storage) CapacityBytes() uint64 {
	n, _ := humanize.ParseBytes(s.Capacity)
	return n
}
