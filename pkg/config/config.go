// Package config loads YAML or TOML configuration files, applies `default` struct tags and watches for changes.
package config

import (
	"errors"
	"fmt"
	"io"
	"io/fs"
	"os"
	"path/filepath"
	"reflect"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/BurntSushi/toml"
	"github.com/radovskyb/watcher"
	"gopkg.in/yaml.v3"

	"github.com/forest33/bitguard/pkg/logger"
)

const (
	tagDefault     = "default"
	envConfigPath  = "BITGUARD_CONFIG"
	extensionTOML  = ".toml"
	watchInterval  = time.Second
	watchMaxEvents = 1
)

type validator interface {
	Validate() error
}

type Config struct {
	path      string
	data      interface{}
	log       *logger.Logger
	observers []func(interface{})
	override  func(interface{})
	watcher   *watcher.Watcher
	mux       sync.Mutex
}

// New reads the configuration into cfg. The path is taken from path, the
// BITGUARD_CONFIG environment variable or defaultFileName in the working
// directory, in that order. A missing file leaves only the defaults.
func New(path, defaultFileName string, cfg interface{}) (*Config, error) {
	if path == "" {
		var ok bool
		if path, ok = os.LookupEnv(envConfigPath); !ok {
			path = defaultFileName
		}
	}

	if err := load(path, cfg); err != nil {
		return nil, err
	}

	return &Config{
		path:      path,
		data:      cfg,
		observers: make([]func(interface{}), 0, 1),
		log:       logger.NewDefault().Layer("config"),
	}, nil
}

func (c *Config) GetPath() string {
	return c.path
}

// AddObserver registers f to be called with the reloaded configuration after every file change
func (c *Config) AddObserver(f func(interface{})) error {
	c.mux.Lock()
	defer c.mux.Unlock()

	if len(c.observers) == 0 {
		if err := c.startWatcher(); err != nil {
			return err
		}
	}
	c.observers = append(c.observers, f)
	return nil
}

// SetOverride applies f to the configuration now and after every reload, before the observers are called
func (c *Config) SetOverride(f func(interface{})) {
	c.mux.Lock()
	c.override = f
	c.mux.Unlock()

	f(c.data)
}

func (c *Config) Close() {
	c.mux.Lock()
	defer c.mux.Unlock()

	if c.watcher != nil {
		c.watcher.Close()
		c.watcher = nil
	}
}

func (c *Config) startWatcher() error {
	w := watcher.New()
	w.SetMaxEvents(watchMaxEvents)
	w.FilterOps(watcher.Write)
	if err := w.Add(c.path); err != nil {
		return err
	}
	c.watcher = w

	go func() {
		if err := w.Start(watchInterval); err != nil {
			c.log.Error().Err(err).Msg("failed to start watching config file")
		}
	}()

	go func() {
		for {
			select {
			case <-w.Event:
				c.log.Info().Str("path", c.path).Msg("config file changed")
				if err := load(c.path, c.data); err != nil {
					c.log.Error().Err(err).Msg("failed to reload config file")
					continue
				}
				c.mux.Lock()
				override := c.override
				observers := append([]func(interface{}){}, c.observers...)
				c.mux.Unlock()
				if override != nil {
					override(c.data)
				}
				for _, f := range observers {
					f(c.data)
				}
			case err := <-w.Error:
				c.log.Error().Err(err).Msg("error on watching config file")
			case <-w.Closed:
				return
			}
		}
	}()

	return nil
}

// Dump writes cfg to w, as TOML when path has the .toml extension and as YAML otherwise
func Dump(w io.Writer, path string, cfg interface{}) error {
	if isTOML(path) {
		return toml.NewEncoder(w).Encode(cfg)
	}

	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(cfg); err != nil {
		return err
	}
	return enc.Close()
}

func isTOML(path string) bool {
	return strings.EqualFold(filepath.Ext(path), extensionTOML)
}

func load(path string, cfg interface{}) error {
	data, err := os.ReadFile(path)
	if err != nil && !errors.Is(err, fs.ErrNotExist) {
		return err
	}

	if isTOML(path) {
		_, err = toml.Decode(string(data), cfg)
	} else {
		err = yaml.Unmarshal(data, cfg)
	}
	if err != nil {
		return err
	}

	if err := Parse(cfg); err != nil {
		return err
	}

	if v, ok := cfg.(validator); ok {
		return v.Validate()
	}

	return nil
}

// Parse fills zero fields of target from their `default` tags. Pointer
// fields are allocated and parsed recursively.
func Parse(target interface{}) error {
	ref := reflect.Indirect(reflect.ValueOf(target))
	for i := 0; i < ref.Type().NumField(); i++ {
		structField := ref.Type().Field(i)
		fieldValue := ref.Field(i)

		if !structField.IsExported() || isSet(structField, &fieldValue) {
			continue
		}

		defaultTagValue, defaultTagExists := structField.Tag.Lookup(tagDefault)

		if defaultTagExists {
			if err := setValue(structField, &fieldValue, defaultTagValue); err != nil {
				return err
			}
			continue
		}

		if fieldValue.IsZero() && structField.Type.Kind() != reflect.Bool && structField.Type.Kind() != reflect.Ptr && structField.Type.Kind() != reflect.Slice {
			return fmt.Errorf("required configuration parameter is not specified - %s.%s", ref.Type().Name(), structField.Name)
		}

		if structField.Type.Kind() == reflect.Ptr {
			if err := setValue(structField, &fieldValue, ""); err != nil {
				return err
			}
		}
	}

	return nil
}

func isSet(structField reflect.StructField, field *reflect.Value) bool {
	if structField.Type.Kind() == reflect.Ptr && structField.Type.Elem().Kind() == reflect.Bool && !field.IsNil() {
		return true
	}
	if structField.Type.Kind() != reflect.Ptr && structField.Type.Kind() != reflect.Slice && !field.IsZero() {
		return true
	}
	return false
}

func setValue(structField reflect.StructField, field *reflect.Value, value string) error {
	switch structField.Type.Kind() {
	case reflect.Int, reflect.Int8, reflect.Int16, reflect.Int32, reflect.Int64:
		v, err := strconv.ParseInt(value, 10, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetInt(v)
	case reflect.Uint, reflect.Uint8, reflect.Uint16, reflect.Uint32, reflect.Uint64:
		v, err := strconv.ParseUint(value, 10, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetUint(v)
	case reflect.Float32, reflect.Float64:
		v, err := strconv.ParseFloat(value, int(structField.Type.Size()*8))
		if err != nil {
			return err
		}
		field.SetFloat(v)
	case reflect.String:
		field.SetString(value)
	case reflect.Bool:
		field.SetBool(strings.ToLower(value) == "true")
	case reflect.Ptr:
		if structField.Type.Elem().Kind() == reflect.Bool {
			b := strings.ToLower(value) == "true"
			field.Set(reflect.ValueOf(&b))
			return nil
		}
		if field.IsNil() {
			field.Set(reflect.New(field.Type().Elem()))
		}
		return Parse(field.Interface())
	case reflect.Slice:
		if len(value) > 0 {
			values := strings.Split(value, ",")
			sl := reflect.MakeSlice(field.Type(), len(values), len(values))
			for i, val := range values {
				sl.Index(i).Set(reflect.ValueOf(val))
			}
			field.Set(sl)
		}
	}
	return nil
}
