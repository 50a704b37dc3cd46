// Package gate implements the version-consistency publish gate. One gate
// evaluation runs per release-tag event: the tag, the project manifest,
// and the package source each contribute a version, and publishing is
// approved only when all three agree. A verdict is terminal; there is no
// retry inside the gate.
package gate

import (
	"errors"
	"strings"
	"time"

	"github.com/fmi-build-tools/relgate/internal/gate/config"
	"github.com/fmi-build-tools/relgate/internal/gate/source"
	"github.com/fmi-build-tools/relgate/internal/gate/version"
	"github.com/google/uuid"
	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
)

// State is the gate's position in its lifecycle. A gate moves from idle
// through validating into exactly one terminal state.
type State string

const (
	StateIdle       State = "idle"
	StateValidating State = "validating"
	StateApproved   State = "approved"
	StateRejected   State = "rejected"
)

// Source names used in reports and mismatch descriptions.
const (
	SourceTag      = "tag"
	SourceManifest = "manifest"
	SourcePackage  = "package"
)

// Cause classifies why a verdict was rejected.
type Cause string

const (
	CauseNone             Cause = ""
	CauseNotAReleaseTag   Cause = "not_a_release_tag"
	CauseMalformedVersion Cause = "malformed_version"
	CauseFieldNotFound    Cause = "field_not_found"
	CauseDuplicateField   Cause = "duplicate_field"
	CauseSourceUnreadable Cause = "source_unreadable"
	CauseInconsistent     Cause = "inconsistent"
)

// Reading is one source's contribution to the report. A reading carries
// either the parsed version or the error that prevented reading it.
type Reading struct {
	Source string `json:"source" yaml:"source"`
	Origin string `json:"origin" yaml:"origin"`
	Value  string `json:"value,omitempty" yaml:"value,omitempty"`
	Error  string `json:"error,omitempty" yaml:"error,omitempty"`
}

// Verdict is the immutable outcome of one gate evaluation.
type Verdict struct {
	RunID       string     `json:"run_id" yaml:"run_id"`
	State       State      `json:"state" yaml:"state"`
	Approved    bool       `json:"approved" yaml:"approved"`
	Cause       Cause      `json:"cause,omitempty" yaml:"cause,omitempty"`
	Reasons     []string   `json:"reasons,omitempty" yaml:"reasons,omitempty"`
	Sources     []Reading  `json:"sources,omitempty" yaml:"sources,omitempty"`
	Mismatches  []Mismatch `json:"mismatches,omitempty" yaml:"mismatches,omitempty"`
	EvaluatedAt time.Time  `json:"evaluated_at" yaml:"evaluated_at"`
}

// ExitCode maps the verdict to the gate's exit signal: 0 unlocks the
// downstream publish step, anything else abandons the release event.
func (v *Verdict) ExitCode() int {
	if v.Approved {
		return 0
	}
	return 1
}

// Err returns the terminal error for a rejected verdict, nil when approved.
func (v *Verdict) Err() error {
	if v.Approved {
		return nil
	}
	reasons := strings.Join(v.Reasons, "; ")
	if v.Cause == CauseInconsistent {
		return ErrInconsistent.Msg(reasons)
	}
	return ErrGate.Msg(reasons)
}

// Gate evaluates one release-tag event against the configured sources.
// Each tag event gets its own Gate; evaluations never share state.
type Gate struct {
	cfg     *config.ConfigParam
	state   State
	verdict *Verdict
	logger  zerolog.Logger
}

// New creates an idle gate for a single evaluation.
func New(cfg *config.ConfigParam) *Gate {
	runID := uuid.NewString()
	return &Gate{
		cfg:    cfg,
		state:  StateIdle,
		logger: log.With().Str("run_id", runID).Logger(),
		verdict: &Verdict{
			RunID: runID,
			State: StateIdle,
		},
	}
}

// State returns the gate's current state.
func (g *Gate) State() State {
	return g.state
}

// Evaluate runs the gate once for the given raw tag name and returns the
// verdict. The terminal state is sticky: calling Evaluate again returns
// the same verdict without re-reading any source.
func (g *Gate) Evaluate(rawTag string) *Verdict {
	if g.state == StateApproved || g.state == StateRejected {
		return g.verdict
	}

	g.state = StateValidating
	g.verdict.State = StateValidating
	g.verdict.EvaluatedAt = time.Now().UTC()
	g.logger.Info().Str("tag", rawTag).Msg("gate validating release event")

	tagReading := Reading{Source: SourceTag, Origin: rawTag}
	tagVersion, err := source.ParseTag(rawTag, g.cfg.TagPrefix)
	if err != nil {
		tagReading.Error = err.Error()
		g.verdict.Sources = append(g.verdict.Sources, tagReading)
		if errors.Is(err, source.ErrNotAReleaseTag) {
			// not a release tag at all; the declaration readers are never invoked
			return g.reject(causeOf(err), err.Error())
		}
		// tag parsed far enough to know it is a release tag with a bad
		// version; still read and report the other sources
		return g.finishWithReaderErrors(err)
	}
	tagReading.Value = tagVersion.String()
	g.verdict.Sources = append(g.verdict.Sources, tagReading)

	manifestDecl, manifestErr := source.ReadManifest(g.cfg.Manifest.Path, g.cfg.ManifestFormat())
	g.verdict.Sources = append(g.verdict.Sources, newReading(SourceManifest, g.cfg.Manifest.Path, manifestDecl, manifestErr))

	packageDecl, packageErr := source.ReadPackage(g.cfg.Package.Path)
	g.verdict.Sources = append(g.verdict.Sources, newReading(SourcePackage, g.cfg.Package.Path, packageDecl, packageErr))

	if manifestErr != nil || packageErr != nil {
		first := manifestErr
		if first == nil {
			first = packageErr
		}
		reasons := make([]string, 0, 2)
		for _, e := range []error{manifestErr, packageErr} {
			if e != nil {
				reasons = append(reasons, e.Error())
			}
		}
		return g.reject(causeOf(first), reasons...)
	}

	mismatches := CheckConsistency(tagVersion, manifestDecl.Version, packageDecl.Version)
	if len(mismatches) > 0 {
		g.verdict.Mismatches = mismatches
		reasons := make([]string, 0, len(mismatches))
		for _, m := range mismatches {
			reasons = append(reasons, m.String())
		}
		return g.reject(CauseInconsistent, reasons...)
	}

	return g.approve()
}

// finishWithReaderErrors handles a malformed tag version: the remaining
// sources are still read so the report can show their values, but the
// verdict is already decided.
func (g *Gate) finishWithReaderErrors(tagErr error) *Verdict {
	manifestDecl, manifestErr := source.ReadManifest(g.cfg.Manifest.Path, g.cfg.ManifestFormat())
	g.verdict.Sources = append(g.verdict.Sources, newReading(SourceManifest, g.cfg.Manifest.Path, manifestDecl, manifestErr))

	packageDecl, packageErr := source.ReadPackage(g.cfg.Package.Path)
	g.verdict.Sources = append(g.verdict.Sources, newReading(SourcePackage, g.cfg.Package.Path, packageDecl, packageErr))

	reasons := []string{tagErr.Error()}
	for _, e := range []error{manifestErr, packageErr} {
		if e != nil {
			reasons = append(reasons, e.Error())
		}
	}
	return g.reject(causeOf(tagErr), reasons...)
}

func (g *Gate) approve() *Verdict {
	g.state = StateApproved
	g.verdict.State = StateApproved
	g.verdict.Approved = true
	g.logger.Info().Msg("gate approved: publish may proceed")
	return g.verdict
}

func (g *Gate) reject(cause Cause, reasons ...string) *Verdict {
	g.state = StateRejected
	g.verdict.State = StateRejected
	g.verdict.Approved = false
	g.verdict.Cause = cause
	g.verdict.Reasons = reasons
	g.logger.Info().Str("cause", string(cause)).Strs("reasons", reasons).Msg("gate rejected: release event abandoned")
	return g.verdict
}

// newReading builds the report entry for a declaration reader result.
func newReading(name, path string, decl *source.Declaration, err error) Reading {
	r := Reading{Source: name, Origin: path}
	if err != nil {
		r.Error = err.Error()
		return r
	}
	r.Value = decl.Version.String()
	return r
}

// causeOf classifies a reader error into the verdict cause taxonomy.
func causeOf(err error) Cause {
	switch {
	case errors.Is(err, source.ErrNotAReleaseTag):
		return CauseNotAReleaseTag
	case errors.Is(err, source.ErrFieldNotFound):
		return CauseFieldNotFound
	case errors.Is(err, source.ErrDuplicateField):
		return CauseDuplicateField
	case errors.Is(err, source.ErrSourceUnreadable):
		return CauseSourceUnreadable
	case errors.Is(err, version.ErrMalformedVersion):
		return CauseMalformedVersion
	default:
		return CauseSourceUnreadable
	}
}
