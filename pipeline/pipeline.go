// Copyright 2026 Quaesit Systems
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//     http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package pipeline

import (
	"context"
	"log/slog"
	"regexp"
	"strings"
	"time"

	"github.com/quaesit/quaesit/ai"
	"github.com/quaesit/quaesit/cache"
	"github.com/quaesit/quaesit/classify"
	"github.com/quaesit/quaesit/core"
	"github.com/quaesit/quaesit/keywords"
	"github.com/quaesit/quaesit/prune"
	"github.com/quaesit/quaesit/retrieve"
	"github.com/quaesit/quaesit/storage"
	"github.com/quaesit/quaesit/validate"
)

const (
	defaultPruneThreshold = 10
	defaultSimpleLimit    = 50
	defaultCacheCapacity  = 256
	defaultCacheTTL       = 15 * time.Minute
)

// Pipeline answers natural-language queries over the profile directory.
// A query is classified, then served either by a structured lookup (simple)
// or by retrieval, pruning, and per-candidate validation (complex). Answered
// queries are cached.
type Pipeline struct {
	profiles       storage.ProfileRepository
	embedder       ai.Embedder
	fallback       ai.QueryClassifier
	classifier     *classify.Classifier
	extractor      *keywords.Extractor
	pruner         *prune.Pruner
	validator      *validate.Validator
	results        *cache.ResultCache
	kPolicy        retrieve.KPolicy
	pruneThreshold int
	simpleLimit    int
	scope          string
	logger         *slog.Logger

	ownsValidator bool
}

// Option configures a Pipeline.
type Option func(*Pipeline) error

// WithClassifier replaces the default pattern classifier.
func WithClassifier(c *classify.Classifier) Option {
	return func(p *Pipeline) error {
		p.classifier = c
		return nil
	}
}

// WithExtractor replaces the default keyword extractor.
func WithExtractor(e *keywords.Extractor) Option {
	return func(p *Pipeline) error {
		p.extractor = e
		return nil
	}
}

// WithPruner replaces the default pruner.
func WithPruner(pr *prune.Pruner) Option {
	return func(p *Pipeline) error {
		p.pruner = pr
		return nil
	}
}

// WithValidator replaces the default validator. The caller keeps ownership
// and must release it.
func WithValidator(v *validate.Validator) Option {
	return func(p *Pipeline) error {
		if p.ownsValidator && p.validator != nil {
			p.validator.Release()
		}
		p.validator = v
		p.ownsValidator = false
		return nil
	}
}

// WithCache replaces the default result cache. Pass nil to disable caching.
func WithCache(c *cache.ResultCache) Option {
	return func(p *Pipeline) error {
		p.results = c
		return nil
	}
}

// WithKPolicy replaces the adaptive-k policy.
func WithKPolicy(policy retrieve.KPolicy) Option {
	return func(p *Pipeline) error {
		p.kPolicy = policy
		return nil
	}
}

// WithPruneThreshold sets the candidate count below which pruning is
// skipped. Zero means always prune.
func WithPruneThreshold(n int) Option {
	return func(p *Pipeline) error {
		if n < 0 {
			return ErrInvalidThreshold
		}
		p.pruneThreshold = n
		return nil
	}
}

// WithSimpleLimit caps the number of results returned by the simple
// lookup path.
func WithSimpleLimit(n int) Option {
	return func(p *Pipeline) error {
		if n < 1 {
			return ErrInvalidLimit
		}
		p.simpleLimit = n
		return nil
	}
}

// WithScope sets the cache scope token, separating result sets for
// pipelines that share one cache.
func WithScope(scope string) Option {
	return func(p *Pipeline) error {
		p.scope = scope
		return nil
	}
}

// WithLogger sets a custom logger.
func WithLogger(logger *slog.Logger) Option {
	return func(p *Pipeline) error {
		if logger == nil {
			return ErrNilLogger
		}
		p.logger = logger
		return nil
	}
}

// NewPipeline creates a pipeline over the given repository and AI provider.
// Call Release when done.
func NewPipeline(profiles storage.ProfileRepository, provider ai.Provider, opts ...Option) (*Pipeline, error) {
	if profiles == nil {
		return nil, ErrProfileRepositoryRequired
	}
	if provider == nil {
		return nil, ErrAIProviderRequired
	}

	extractor, err := keywords.NewExtractor()
	if err != nil {
		return nil, err
	}

	pruner, err := prune.NewPruner()
	if err != nil {
		return nil, err
	}

	results, err := cache.New(defaultCacheCapacity, defaultCacheTTL)
	if err != nil {
		return nil, err
	}

	p := &Pipeline{
		profiles:       profiles,
		embedder:       provider.Embedder(),
		fallback:       provider.QueryClassifier(),
		classifier:     classify.NewClassifier(),
		extractor:      extractor,
		pruner:         pruner,
		results:        results,
		kPolicy:        retrieve.DefaultKPolicy,
		pruneThreshold: defaultPruneThreshold,
		simpleLimit:    defaultSimpleLimit,
		logger:         slog.Default().With("component", "pipeline"),
	}

	for _, opt := range opts {
		if err := opt(p); err != nil {
			p.Release()
			return nil, err
		}
	}

	if p.validator == nil {
		validator, err := validate.NewValidator(provider.CandidateValidator())
		if err != nil {
			p.Release()
			return nil, err
		}
		p.validator = validator
		p.ownsValidator = true
	}

	return p, nil
}

// Release frees resources owned by the pipeline.
// The pipeline must not be used afterwards.
func (p *Pipeline) Release() {
	if p.ownsValidator && p.validator != nil {
		p.validator.Release()
	}
}

// Response is the answer to one query, with per-stage diagnostics.
type Response struct {
	Results []core.Result

	Label       core.QueryLabel
	LabelSource classify.Source
	Keywords    []string
	FromCache   bool

	// Retrieved, Pruned, and Validated count the candidates alive after
	// each stage of the complex path. Zero for simple and cached answers.
	Retrieved int
	Pruned    int
	Validated int

	// Failures holds outcomes whose validation errored. Those candidates
	// are excluded from Results rather than silently accepted or dropped.
	Failures []core.ValidationOutcome

	Elapsed time.Duration
}

// AnswerOption adjusts a single Answer call.
type AnswerOption func(*answerOptions)

type answerOptions struct {
	bypassCache   bool
	maxCandidates int
	deadline      time.Duration
	monitor       Monitor
}

// WithBypassCache skips the cache read, forcing a fresh answer. The fresh
// answer still replaces the cached entry.
func WithBypassCache() AnswerOption {
	return func(o *answerOptions) { o.bypassCache = true }
}

// WithMaxCandidates overrides the adaptive-k policy for this call.
func WithMaxCandidates(k int) AnswerOption {
	return func(o *answerOptions) { o.maxCandidates = k }
}

// WithDeadline bounds the validation stage for this call. Candidates not
// validated before it expires are reported as failures.
func WithDeadline(d time.Duration) AnswerOption {
	return func(o *answerOptions) { o.deadline = d }
}

// WithMonitor attaches a monitor to this call.
func WithMonitor(m Monitor) AnswerOption {
	return func(o *answerOptions) { o.monitor = m }
}

// Answer runs the query through the pipeline and returns ranked results.
func (p *Pipeline) Answer(ctx context.Context, query string, opts ...AnswerOption) (*Response, error) {
	options := &answerOptions{}
	for _, opt := range opts {
		opt(options)
	}
	monitor := options.monitor
	if monitor == nil {
		monitor = &noopMonitor{}
	}

	if strings.TrimSpace(query) == "" {
		return nil, ErrEmptyQuery
	}

	start := time.Now()
	monitor.Start(query)

	key := cache.NewKey(query, p.scope)
	if p.results != nil && !options.bypassCache {
		if cached, ok := p.results.Get(key); ok {
			p.logger.Debug("cache hit", "query", key.Query)
			monitor.CacheHit(query, cached)
			resp := &Response{Results: cached, FromCache: true, Elapsed: time.Since(start)}
			monitor.Finish(resp.Results)
			return resp, nil
		}
	}

	label, source, err := p.classify(ctx, query)
	if err != nil {
		return nil, err
	}
	monitor.AfterClassification(label, source)

	var resp *Response
	if label == core.LabelSimple {
		resp, err = p.answerSimple(ctx, query)
	} else {
		resp, err = p.answerComplex(ctx, query, options, monitor)
	}
	if err != nil {
		return nil, err
	}

	resp.Label = label
	resp.LabelSource = source

	if p.results != nil {
		p.results.Set(key, resp.Results)
	}

	resp.Elapsed = time.Since(start)
	monitor.Finish(resp.Results)
	return resp, nil
}

// classify runs the pattern rules, falling back to the LLM classifier when
// they are inconclusive. A fallback call failure is fatal: with both
// classifiers unable to label the query there is no principled path to
// route it down. An unrecognized response is not a failure; the fallback
// already maps it to LabelComplex.
func (p *Pipeline) classify(ctx context.Context, query string) (core.QueryLabel, classify.Source, error) {
	res := p.classifier.Classify(query)
	if res.Label != core.LabelUnknown {
		return res.Label, res.Source, nil
	}

	label, err := p.fallback.ClassifyQuery(ctx, query)
	if err != nil {
		return 0, 0, stageErr(StageClassify, err)
	}
	if label == core.LabelUnknown {
		label = core.LabelComplex
	}
	return label, classify.SourceFallback, nil
}

var namedTermPattern = regexp.MustCompile(`\bnamed\s+([a-z][a-z'-]*)`)

// lookupTerm picks the term for the structured lookup path: the word after
// "named" when present, otherwise the first extracted keyword, otherwise the
// longest query word.
func (p *Pipeline) lookupTerm(query string) string {
	normalized := core.NormalizeQuery(query)

	if m := namedTermPattern.FindStringSubmatch(normalized); m != nil {
		return m[1]
	}

	if kws := p.extractor.Extract(query); len(kws) > 0 {
		return kws[0].Canonical
	}

	longest := ""
	for _, word := range strings.Fields(normalized) {
		if len(word) > len(longest) {
			longest = word
		}
	}
	return longest
}

func (p *Pipeline) answerSimple(ctx context.Context, query string) (*Response, error) {
	term := p.lookupTerm(query)
	if term == "" {
		return nil, ErrEmptyQuery
	}

	profiles, err := p.profiles.FindByTerm(ctx, term, p.simpleLimit)
	if err != nil {
		return nil, stageErr(StageLookup, err)
	}

	results := make([]core.Result, 0, len(profiles))
	for _, profile := range profiles {
		results = append(results, core.Result{
			ProfileId: profile.Id,
			Name:      profile.Name,
			URL:       profile.URL,
			Score:     1,
			Rationale: "matched term: " + term,
		})
	}

	p.logger.Debug("simple lookup", "term", term, "results", len(results))
	return &Response{Results: results}, nil
}

func (p *Pipeline) answerComplex(ctx context.Context, query string, options *answerOptions, monitor Monitor) (*Response, error) {
	resp := &Response{}

	kws := p.extractor.Extract(query)
	monitor.AfterKeywordExtraction(kws)
	resp.Keywords = keywords.Canonicals(kws)

	k := p.kPolicy(len(kws))
	if options.maxCandidates > 0 {
		k = options.maxCandidates
	}

	queryVector, err := p.embedder.EmbedText(ctx, query)
	if err != nil {
		p.logger.Error("error embedding query", "err", err)
		return nil, stageErr(StageEmbed, err)
	}

	universe, err := p.profiles.Universe(ctx)
	if err != nil {
		p.logger.Error("error loading universe", "err", err)
		return nil, stageErr(StageUniverse, err)
	}

	candidates := retrieve.TopK(queryVector, universe, k)
	monitor.AfterRetrieval(candidates)
	resp.Retrieved = len(candidates)

	if len(candidates) > p.pruneThreshold && len(kws) > 0 {
		candidates, err = p.pruner.Prune(ctx, candidates, resp.Keywords, p.profiles)
		if err != nil {
			return nil, stageErr(StagePrune, err)
		}
	}
	monitor.AfterPruning(candidates)
	resp.Pruned = len(candidates)

	validateCtx := ctx
	if options.deadline > 0 {
		var cancel context.CancelFunc
		validateCtx, cancel = context.WithTimeout(ctx, options.deadline)
		defer cancel()
	}

	outcomes, err := p.validator.Validate(validateCtx, query, candidates, p.profiles)
	if err != nil {
		return nil, stageErr(StageValidate, err)
	}
	monitor.AfterValidation(outcomes)
	resp.Validated = len(outcomes)

	accepted := make([]core.ValidationOutcome, 0, len(outcomes))
	for _, outcome := range outcomes {
		switch {
		case outcome.Err != nil:
			resp.Failures = append(resp.Failures, outcome)
		case outcome.Accepted:
			accepted = append(accepted, outcome)
		}
	}

	results, err := p.assembleResults(ctx, accepted)
	if err != nil {
		return nil, stageErr(StageAssemble, err)
	}
	resp.Results = results

	p.logger.Debug("complex answer",
		"retrieved", resp.Retrieved,
		"pruned", resp.Pruned,
		"accepted", len(results),
		"failures", len(resp.Failures),
	)
	return resp, nil
}

// assembleResults resolves accepted outcomes to full results, preserving
// the validation order (which is the retrieval order).
func (p *Pipeline) assembleResults(ctx context.Context, accepted []core.ValidationOutcome) ([]core.Result, error) {
	if len(accepted) == 0 {
		return []core.Result{}, nil
	}

	ids := make([]core.ID, len(accepted))
	for i, outcome := range accepted {
		ids[i] = outcome.ProfileId
	}

	profiles, err := p.profiles.GetProfiles(ctx, ids...)
	if err != nil {
		return nil, err
	}
	byID := make(map[core.ID]*core.Profile, len(profiles))
	for _, profile := range profiles {
		byID[profile.Id] = profile
	}

	results := make([]core.Result, 0, len(accepted))
	for _, outcome := range accepted {
		profile, ok := byID[outcome.ProfileId]
		if !ok {
			// Validated against a profile deleted mid-flight. Skip it.
			p.logger.Warn("accepted profile missing from storage", "id", outcome.ProfileId)
			continue
		}
		results = append(results, core.Result{
			ProfileId: outcome.ProfileId,
			Name:      profile.Name,
			URL:       profile.URL,
			Score:     outcome.Score,
			Rationale: outcome.Rationale,
		})
	}
	return results, nil
}
