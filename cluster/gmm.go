package cluster

import (
	"fmt"
	"math"

	"gonum.org/v1/gonum/mat"
)

// Covariance is the covariance structure of a Gaussian mixture.
// The zero value Full places no constraint on the component covariances.
type Covariance int

const (
	Full Covariance = iota
	Tied
	Diag
	Spherical
)

func (c Covariance) String() string {
	switch c {
	case Full:
		return "full"
	case Tied:
		return "tied"
	case Diag:
		return "diag"
	case Spherical:
		return "spherical"
	default:
		return fmt.Sprintf("unknown(%d)", c)
	}
}

// CovarianceGrid is the structure enumeration order of the BIC search.
var CovarianceGrid = []Covariance{Spherical, Tied, Diag, Full}

const (
	defaultRegCovar = 1e-6
	defaultTol      = 1e-3
	defaultEMIter   = 100

	// nkFloor keeps component weights strictly positive, matching the
	// resp_k + 10*eps stabilization of the reference implementation.
	nkFloor = 10 * 2.220446049250313e-16
)

// GMM fits a Gaussian mixture by expectation-maximization.
// Responsibilities are initialized from a seeded k-means labeling, so
// the fit is deterministic for a fixed Seed and input order.
type GMM struct {
	K          int
	Covariance Covariance
	RegCovar   float64 // floor added to covariance diagonals; 0 means 1e-6
	MaxIter    int     // 0 means 100
	Tol        float64 // mean log-likelihood convergence delta; 0 means 1e-3
	Seed       int64
}

// GMMResult holds the labeling and the model-selection scores of a fit.
type GMMResult struct {
	Labels     []Label
	Weights    []float64
	Means      [][]float64
	Covariance Covariance
	// LogLik is the final mean per-sample log-likelihood.
	LogLik float64
	// BIC is the Bayesian Information Criterion of the fit
	// (lower is better).
	BIC float64
}

// Fit runs EM on X. It requires at least K points.
func (g GMM) Fit(X [][]float64) (*GMMResult, error) {
	n := len(X)
	if g.K < 1 {
		return nil, fmt.Errorf("gmm: k must be positive, got %d", g.K)
	}
	if n < g.K {
		return nil, fmt.Errorf("gmm: %d points cannot support %d components", n, g.K)
	}

	reg := g.RegCovar
	if reg == 0 {
		reg = defaultRegCovar
	}
	tol := g.Tol
	if tol == 0 {
		tol = defaultTol
	}
	maxIter := g.MaxIter
	if maxIter <= 0 {
		maxIter = defaultEMIter
	}

	dim := len(X[0])
	resp := make([][]float64, n)
	for i := range resp {
		resp[i] = make([]float64, g.K)
	}

	// Hard k-means assignment seeds the responsibilities.
	km, err := KMeans{K: g.K, Seed: g.Seed}.Fit(X)
	if err != nil {
		return nil, err
	}
	for i, l := range km.Labels {
		resp[i][int(l)] = 1
	}

	p := &gmmParams{k: g.K, dim: dim, cov: g.Covariance, reg: reg}
	logLik := math.Inf(-1)
	for iter := 0; iter < maxIter; iter++ {
		if err := p.mStep(X, resp); err != nil {
			return nil, err
		}
		ll := p.eStep(X, resp)
		if math.Abs(ll-logLik) < tol {
			logLik = ll
			break
		}
		logLik = ll
	}

	labels := make([]Label, n)
	for i := range X {
		best, bestResp := 0, resp[i][0]
		for j := 1; j < g.K; j++ {
			if resp[i][j] > bestResp {
				best, bestResp = j, resp[i][j]
			}
		}
		labels[i] = Label(best)
	}

	return &GMMResult{
		Labels:     labels,
		Weights:    p.weights,
		Means:      p.means,
		Covariance: g.Covariance,
		LogLik:     logLik,
		BIC:        -2*logLik*float64(n) + float64(g.paramCount(dim))*math.Log(float64(n)),
	}, nil
}

// paramCount is the free-parameter count of the mixture: covariance
// parameters plus means plus mixing weights.
func (g GMM) paramCount(dim int) int {
	var cov int
	switch g.Covariance {
	case Full:
		cov = g.K * dim * (dim + 1) / 2
	case Tied:
		cov = dim * (dim + 1) / 2
	case Diag:
		cov = g.K * dim
	case Spherical:
		cov = g.K
	}
	return cov + g.K*dim + g.K - 1
}

// gmmParams carries the mixture parameters between EM steps.
type gmmParams struct {
	k, dim  int
	cov     Covariance
	reg     float64
	weights []float64
	means   [][]float64

	fullChol []*mat.Cholesky // Full: one factor per component
	tiedChol *mat.Cholesky   // Tied: the shared factor
	diagVar  [][]float64     // Diag: per-component, per-dimension
	spherVar []float64       // Spherical: per-component
}

func (p *gmmParams) mStep(X [][]float64, resp [][]float64) error {
	n := len(X)

	nk := make([]float64, p.k)
	for i := range X {
		for j := 0; j < p.k; j++ {
			nk[j] += resp[i][j]
		}
	}
	for j := range nk {
		nk[j] += nkFloor
	}

	p.weights = make([]float64, p.k)
	p.means = make([][]float64, p.k)
	for j := 0; j < p.k; j++ {
		p.weights[j] = nk[j] / float64(n)
		mu := make([]float64, p.dim)
		for i, x := range X {
			r := resp[i][j]
			for d, v := range x {
				mu[d] += r * v
			}
		}
		for d := range mu {
			mu[d] /= nk[j]
		}
		p.means[j] = mu
	}

	switch p.cov {
	case Full:
		p.fullChol = make([]*mat.Cholesky, p.k)
		for j := 0; j < p.k; j++ {
			cov := p.scatter(X, resp, j, nk[j])
			chol, err := factorize(cov)
			if err != nil {
				return err
			}
			p.fullChol[j] = chol
		}
	case Tied:
		sum := mat.NewSymDense(p.dim, nil)
		for j := 0; j < p.k; j++ {
			s := p.scatterRaw(X, resp, j)
			sum.AddSym(sum, s)
		}
		tied := mat.NewSymDense(p.dim, nil)
		for r := 0; r < p.dim; r++ {
			for c := r; c < p.dim; c++ {
				v := sum.At(r, c) / float64(n)
				if r == c {
					v += p.reg
				}
				tied.SetSym(r, c, v)
			}
		}
		chol, err := factorize(tied)
		if err != nil {
			return err
		}
		p.tiedChol = chol
	case Diag, Spherical:
		p.diagVar = make([][]float64, p.k)
		for j := 0; j < p.k; j++ {
			v := make([]float64, p.dim)
			for i, x := range X {
				r := resp[i][j]
				for d := range x {
					diff := x[d] - p.means[j][d]
					v[d] += r * diff * diff
				}
			}
			for d := range v {
				v[d] = v[d]/nk[j] + p.reg
			}
			p.diagVar[j] = v
		}
		if p.cov == Spherical {
			p.spherVar = make([]float64, p.k)
			for j, v := range p.diagVar {
				var s float64
				for _, vd := range v {
					s += vd
				}
				p.spherVar[j] = s / float64(p.dim)
			}
		}
	}

	return nil
}

// scatter is the regularized weighted covariance of component j.
func (p *gmmParams) scatter(X [][]float64, resp [][]float64, j int, nk float64) *mat.SymDense {
	raw := p.scatterRaw(X, resp, j)
	cov := mat.NewSymDense(p.dim, nil)
	for r := 0; r < p.dim; r++ {
		for c := r; c < p.dim; c++ {
			v := raw.At(r, c) / nk
			if r == c {
				v += p.reg
			}
			cov.SetSym(r, c, v)
		}
	}
	return cov
}

// scatterRaw is the unnormalized weighted scatter Σᵢ rᵢⱼ (x−μⱼ)(x−μⱼ)ᵀ.
func (p *gmmParams) scatterRaw(X [][]float64, resp [][]float64, j int) *mat.SymDense {
	s := mat.NewSymDense(p.dim, nil)
	diff := make([]float64, p.dim)
	for i, x := range X {
		r := resp[i][j]
		if r == 0 {
			continue
		}
		for d := range x {
			diff[d] = x[d] - p.means[j][d]
		}
		s.SymRankOne(s, r, mat.NewVecDense(p.dim, diff))
	}
	return s
}

func factorize(cov *mat.SymDense) (*mat.Cholesky, error) {
	var chol mat.Cholesky
	if !chol.Factorize(cov) {
		return nil, fmt.Errorf("gmm: covariance not positive definite despite regularization")
	}
	return &chol, nil
}

// eStep fills resp with posterior responsibilities and returns the mean
// per-sample log-likelihood.
func (p *gmmParams) eStep(X [][]float64, resp [][]float64) float64 {
	n := len(X)
	wlp := make([]float64, p.k)
	var total float64

	for i, x := range X {
		for j := 0; j < p.k; j++ {
			wlp[j] = math.Log(p.weights[j]) + p.logProb(x, j)
		}
		lse := logSumExp(wlp)
		total += lse
		for j := 0; j < p.k; j++ {
			resp[i][j] = math.Exp(wlp[j] - lse)
		}
	}

	return total / float64(n)
}

const log2Pi = 1.8378770664093453

func (p *gmmParams) logProb(x []float64, j int) float64 {
	diff := make([]float64, p.dim)
	for d := range x {
		diff[d] = x[d] - p.means[j][d]
	}

	switch p.cov {
	case Full, Tied:
		chol := p.tiedChol
		if p.cov == Full {
			chol = p.fullChol[j]
		}
		v := mat.NewVecDense(p.dim, diff)
		var solved mat.VecDense
		if err := chol.SolveVecTo(&solved, v); err != nil {
			return math.Inf(-1)
		}
		quad := mat.Dot(v, &solved)
		return -0.5 * (float64(p.dim)*log2Pi + chol.LogDet() + quad)
	case Diag:
		var s float64
		for d, vd := range p.diagVar[j] {
			s += math.Log(vd) + diff[d]*diff[d]/vd
		}
		return -0.5 * (float64(p.dim)*log2Pi + s)
	default: // Spherical
		v := p.spherVar[j]
		var quad float64
		for _, dd := range diff {
			quad += dd * dd
		}
		return -0.5 * (float64(p.dim)*(log2Pi+math.Log(v)) + quad/v)
	}
}

func logSumExp(v []float64) float64 {
	maxV := math.Inf(-1)
	for _, x := range v {
		if x > maxV {
			maxV = x
		}
	}
	if math.IsInf(maxV, -1) {
		return maxV
	}
	var s float64
	for _, x := range v {
		s += math.Exp(x - maxV)
	}
	return maxV + math.Log(s)
}
