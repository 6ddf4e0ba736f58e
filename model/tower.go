// Package model 实现共享投影塔：把稀疏特征向量映射为低维单位嵌入。
//
// 双塔结构中，用户与游戏共享同一个塔（同一特征空间、同一组权重），
// 因此两侧嵌入天然可比，点积即余弦相似度。
package model

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/ludokit/ludokit/core"
)

// 默认网络结构：F -> 128 -> 64 -> 32。
const (
	DefaultHidden1      = 128
	DefaultHidden2      = 64
	DefaultEmbeddingDim = 32

	// DefaultSeed 固定随机种子，保证同一目录两次构建得到相同的初始权重。
	DefaultSeed = 42

	// normEpsilon 防止零向量归一化时除零。
	normEpsilon = 1e-10
)

// Tower 是三层前馈投影塔。
//
// 权重布局为 [in][out]（weights1[i][j] 连接输入 i 与隐层 1 的神经元 j），
// 偏置与隐层使用 ReLU，输出层不做激活、L2 归一化。
//
// Tower 构建后权重只被训练流程修改；Project 只读，可并发调用。
type Tower struct {
	inputSize    int
	hidden1      int
	hidden2      int
	embeddingDim int

	weights1 [][]float64
	bias1    []float64
	weights2 [][]float64
	bias2    []float64
	weights3 [][]float64
	bias3    []float64
}

// Option 配置 Tower 的构建参数。
type Option func(*towerConfig)

type towerConfig struct {
	hidden1      int
	hidden2      int
	embeddingDim int
	seed         int64
}

// WithHiddenSizes 设置两个隐层的宽度。
func WithHiddenSizes(h1, h2 int) Option {
	return func(c *towerConfig) {
		if h1 > 0 {
			c.hidden1 = h1
		}
		if h2 > 0 {
			c.hidden2 = h2
		}
	}
}

// WithEmbeddingDim 设置输出嵌入维度。
func WithEmbeddingDim(dim int) Option {
	return func(c *towerConfig) {
		if dim > 0 {
			c.embeddingDim = dim
		}
	}
}

// WithSeed 设置权重初始化的随机种子。
func WithSeed(seed int64) Option {
	return func(c *towerConfig) {
		c.seed = seed
	}
}

// NewTower 创建投影塔并完成 Xavier 初始化。
//
// 初始化为高斯采样 × sqrt(2/(fanIn+fanOut))，偏置置零；
// 相同 (inputSize, 结构, seed) 下初始化结果逐位相同。
func NewTower(inputSize int, opts ...Option) (*Tower, error) {
	if inputSize <= 0 {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: invalid input size %d", inputSize))
	}

	cfg := &towerConfig{
		hidden1:      DefaultHidden1,
		hidden2:      DefaultHidden2,
		embeddingDim: DefaultEmbeddingDim,
		seed:         DefaultSeed,
	}
	for _, opt := range opts {
		opt(cfg)
	}

	rng := rand.New(rand.NewSource(cfg.seed))
	t := &Tower{
		inputSize:    inputSize,
		hidden1:      cfg.hidden1,
		hidden2:      cfg.hidden2,
		embeddingDim: cfg.embeddingDim,
	}
	t.weights1 = xavierInit(rng, inputSize, cfg.hidden1)
	t.bias1 = make([]float64, cfg.hidden1)
	t.weights2 = xavierInit(rng, cfg.hidden1, cfg.hidden2)
	t.bias2 = make([]float64, cfg.hidden2)
	t.weights3 = xavierInit(rng, cfg.hidden2, cfg.embeddingDim)
	t.bias3 = make([]float64, cfg.embeddingDim)
	return t, nil
}

// InputSize 返回塔期望的输入维度。
func (t *Tower) InputSize() int { return t.inputSize }

// EmbeddingDim 返回输出嵌入维度。
func (t *Tower) EmbeddingDim() int { return t.embeddingDim }

// ParameterCount 返回可训练参数总数（权重 + 偏置）。
func (t *Tower) ParameterCount() int {
	return t.inputSize*t.hidden1 + t.hidden1 +
		t.hidden1*t.hidden2 + t.hidden2 +
		t.hidden2*t.embeddingDim + t.embeddingDim
}

// Project 把特征向量投影为单位嵌入。
//
// 输入维度与塔不一致时返回 INVALID_INPUT；
// 零输入也会得到合法的单位方向（epsilon 兜底）。
func (t *Tower) Project(features []float64) ([]float64, error) {
	if len(features) != t.inputSize {
		return nil, core.NewDomainError(core.ModuleModel, core.ErrorCodeInvalidInput,
			fmt.Sprintf("model: feature size %d does not match tower input %d", len(features), t.inputSize))
	}

	h1 := forward(features, t.weights1, t.bias1, true)
	h2 := forward(h1, t.weights2, t.bias2, true)
	out := forward(h2, t.weights3, t.bias3, false)
	return normalize(out), nil
}

// AdjustOutputLayer 对输出层所有权重施加同一增量（训练用）。
func (t *Tower) AdjustOutputLayer(delta float64) {
	for i := range t.weights3 {
		for j := range t.weights3[i] {
			t.weights3[i][j] -= delta
		}
	}
}

// Dot 计算两个向量的点积；两侧均为单位向量时即余弦相似度。
// 维度不一致时按较短的一侧截断。
func Dot(a, b []float64) float64 {
	n := len(a)
	if len(b) < n {
		n = len(b)
	}
	sum := 0.0
	for i := 0; i < n; i++ {
		sum += a[i] * b[i]
	}
	return sum
}

func xavierInit(rng *rand.Rand, fanIn, fanOut int) [][]float64 {
	scale := math.Sqrt(2.0 / float64(fanIn+fanOut))
	w := make([][]float64, fanIn)
	for i := range w {
		w[i] = make([]float64, fanOut)
		for j := range w[i] {
			w[i][j] = rng.NormFloat64() * scale
		}
	}
	return w
}

func forward(input []float64, weights [][]float64, bias []float64, relu bool) []float64 {
	out := make([]float64, len(bias))
	copy(out, bias)
	for i, x := range input {
		if x == 0 {
			continue
		}
		row := weights[i]
		for j := range out {
			out[j] += x * row[j]
		}
	}
	if relu {
		for j := range out {
			if out[j] < 0 {
				out[j] = 0
			}
		}
	}
	return out
}

func normalize(v []float64) []float64 {
	sum := 0.0
	for _, x := range v {
		sum += x * x
	}
	norm := math.Sqrt(sum) + normEpsilon
	out := make([]float64, len(v))
	for i, x := range v {
		out[i] = x / norm
	}
	return out
}
