// Zaparoo Import
// Copyright (c) 2026 The Zaparoo Project Contributors.
// SPDX-License-Identifier: GPL-3.0-or-later
//
// This file is part of Zaparoo Import.
//
// Zaparoo Import is free software: you can redistribute it and/or modify
// it under the terms of the GNU General Public License as published by
// the Free Software Foundation, either version 3 of the License, or
// (at your option) any later version.
//
// Zaparoo Import is distributed in the hope that it will be useful,
// but WITHOUT ANY WARRANTY; without even the implied warranty of
// MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
// GNU General Public License for more details.
//
// You should have received a copy of the GNU General Public License
// along with Zaparoo Import.  If not, see <http://www.gnu.org/licenses/>.

package launchers

import (
	"context"
	"errors"
	"os"
	"slices"
	"strings"

	"github.com/ZaparooProject/zaparoo-import/pkg/config"
	"github.com/ZaparooProject/zaparoo-import/pkg/helpers"
	"github.com/ZaparooProject/zaparoo-import/pkg/platforms/registry"
	"github.com/jonboulle/clockwork"
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"golang.org/x/sync/errgroup"
)

// DetectorOptions configures a Detector. Zero values select the real
// filesystem, registry, environment and clock.
type DetectorOptions struct {
	Fs          afero.Fs
	Registry    registry.Reader
	Env         helpers.EnvLookup
	Clock       clockwork.Clock
	Overrides   []config.LaunchersDefault
	Disabled    []string
	Catalog     []Profile
	Concurrency int
}

// Detector finds which launchers are installed.
type Detector struct {
	fs          afero.Fs
	reg         registry.Reader
	env         helpers.EnvLookup
	clock       clockwork.Clock
	overrides   []config.LaunchersDefault
	disabled    []string
	catalog     []Profile
	concurrency int
}

//nolint:gocritic // options struct copied on purpose
func NewDetector(opts DetectorOptions) *Detector {
	d := &Detector{
		fs:          opts.Fs,
		reg:         opts.Registry,
		env:         opts.Env,
		clock:       opts.Clock,
		overrides:   opts.Overrides,
		disabled:    opts.Disabled,
		catalog:     opts.Catalog,
		concurrency: opts.Concurrency,
	}
	if d.fs == nil {
		d.fs = afero.NewOsFs()
	}
	if d.reg == nil {
		d.reg = registry.NewSystem()
	}
	if d.env == nil {
		d.env = os.LookupEnv
	}
	if d.clock == nil {
		d.clock = clockwork.NewRealClock()
	}
	if d.catalog == nil {
		d.catalog = Catalog()
	}
	if d.concurrency <= 0 {
		d.concurrency = config.DefaultConcurrency
	}
	return d
}

// Profiles returns the launchers this detector probes.
func (d *Detector) Profiles() []Profile {
	return d.catalog
}

// Override returns the user override for a launcher, if any.
func (d *Detector) Override(launcherID string) (config.LaunchersDefault, bool) {
	for _, o := range d.overrides {
		if strings.EqualFold(o.Launcher, launcherID) {
			return o, true
		}
	}
	return config.LaunchersDefault{}, false
}

func (d *Detector) isDisabled(launcherID string) bool {
	return slices.ContainsFunc(d.disabled, func(id string) bool {
		return strings.EqualFold(id, launcherID)
	})
}

// Detect probes a single launcher. The install path is resolved from, in
// order: the user override, the registry, then each candidate path. Only
// existing directories are accepted, except that a registry key with no
// install directory still marks the launcher present: it is reported at
// the first expandable candidate path with source SourceRegistryKey.
//
//nolint:gocritic // profile is a small value type
func (d *Detector) Detect(p Profile) DetectionResult {
	res := DetectionResult{ID: p.ID, Name: p.Name, Icon: p.Icon}

	found := func(path, source string) DetectionResult {
		res.Detected = true
		res.InstallPath = path
		res.Source = source
		log.Debug().
			Str("launcher", p.ID).
			Str("path", path).
			Str("source", source).
			Msg("launcher detected")
		return res
	}

	if d.isDisabled(p.ID) {
		log.Debug().Str("launcher", p.ID).Msg("launcher disabled in config, skipping")
		return res
	}

	if o, ok := d.Override(p.ID); ok && o.InstallDir != "" {
		if helpers.DirExists(d.fs, o.InstallDir) {
			return found(o.InstallDir, SourceOverride)
		}
		log.Warn().Msgf("user-configured %s directory not found: %s", p.ID, o.InstallDir)
	}

	keyPresent := false
	if p.Registry != nil {
		var path string
		path, keyPresent = d.probeRegistry(p.ID, p.Registry)
		if path != "" && helpers.DirExists(d.fs, path) {
			return found(path, SourceRegistry)
		}
	}

	firstCandidate := ""
	for _, candidate := range p.Paths {
		expanded, ok := helpers.ExpandPath(candidate, d.env)
		if !ok {
			log.Debug().Str("launcher", p.ID).Msgf("skipping unexpandable path: %s", candidate)
			continue
		}
		if firstCandidate == "" {
			firstCandidate = expanded
		}
		if helpers.DirExists(d.fs, expanded) {
			return found(expanded, SourcePath)
		}
	}

	if keyPresent && firstCandidate != "" {
		log.Warn().
			Str("launcher", p.ID).
			Str("path", firstCandidate).
			Msg("registry key present but no install directory found, assuming default location")
		return found(firstCandidate, SourceRegistryKey)
	}

	return res
}

// probeRegistry returns the install path stored in the registry, if any,
// and whether the probed key exists at all. Errors are logged and treated
// as absence.
func (d *Detector) probeRegistry(launcherID string, probe *RegistryProbe) (string, bool) {
	if probe.Value != "" {
		v, err := d.reg.StringValue(probe.Root, probe.Key, probe.Value)
		if err == nil {
			return strings.TrimSpace(v), true
		}
		logRegistryErr(launcherID, probe, err)
	}

	if _, err := d.reg.Values(probe.Root, probe.Key); err != nil {
		logRegistryErr(launcherID, probe, err)
		return "", false
	}
	return "", true
}

func logRegistryErr(launcherID string, probe *RegistryProbe, err error) {
	if errors.Is(err, registry.ErrNotExist) || errors.Is(err, registry.ErrUnavailable) {
		return
	}
	log.Debug().Err(err).
		Str("launcher", launcherID).
		Str("key", probe.Root.String()+`\`+probe.Key).
		Msg("registry probe failed")
}

// DetectAll probes every launcher, at most concurrency at a time. Results
// are in catalog order. Launchers not probed before ctx is cancelled are
// reported as not detected.
func (d *Detector) DetectAll(ctx context.Context) []DetectionResult {
	start := d.clock.Now()
	results := make([]DetectionResult, len(d.catalog))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(d.concurrency)
	for i, p := range d.catalog {
		results[i] = DetectionResult{ID: p.ID, Name: p.Name, Icon: p.Icon}
		g.Go(func() error {
			if gctx.Err() != nil {
				return nil
			}
			results[i] = d.Detect(p)
			return nil
		})
	}
	_ = g.Wait()

	detected := 0
	for _, r := range results {
		if r.Detected {
			detected++
		}
	}
	log.Info().
		Int("launchers", len(results)).
		Int("detected", detected).
		Dur("took", d.clock.Since(start)).
		Msg("launcher detection complete")

	return results
}
