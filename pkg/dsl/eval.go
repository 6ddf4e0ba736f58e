// Package dsl 提供基于 CEL (Common Expression Language) 的规则解释器，
// 用于策略驱动的候选过滤（例如 "game.price < 30 && item.score > 0.5"）。
package dsl

import (
	"fmt"
	"sync"

	"github.com/google/cel-go/cel"

	"github.com/ludokit/ludokit/core"
)

var (
	// celEnv 是全局的 CEL 环境，线程安全，可复用
	celEnv     *cel.Env
	celEnvOnce sync.Once
)

func initCELEnv() (*cel.Env, error) {
	env, err := cel.NewEnv(
		cel.Variable("item", cel.DynType),
		cel.Variable("game", cel.DynType),
		cel.Variable("label", cel.DynType),
		cel.Variable("rctx", cel.DynType),
	)
	return env, err
}

func getCELEnv() (*cel.Env, error) {
	var err error
	celEnvOnce.Do(func() {
		celEnv, err = initCELEnv()
	})
	return celEnv, err
}

// Eval 是规则解释器，对单个候选游戏执行 CEL 表达式。
//
// 可用变量：
//   - item: id / score / labels
//   - game: title / genres / tags / rating / release_year / platform /
//     playtime_hours / price / multiplayer / difficulty
//   - label: 顶层 Label value 访问（label.recall_source == "recall.catalog"）
//   - rctx: user_id / scene / params
//
// 示例：
//   - `game.price < 30.0` → 只保留 30 以下的游戏
//   - `"rpg" in game.genres && game.rating > 8.0` → 高分 RPG
//   - `item.score > 0.5` → 按排序分数过滤
type Eval struct {
	item *core.Item
	rctx *core.RecommendContext
	env  *cel.Env
}

// NewEval 创建一个新的规则解释器。
func NewEval(item *core.Item, rctx *core.RecommendContext) *Eval {
	env, _ := getCELEnv()
	return &Eval{
		item: item,
		rctx: rctx,
		env:  env,
	}
}

// Evaluate 解析并执行 CEL 表达式，返回布尔结果。
// 空表达式视为恒真；表达式不返回 bool 时报错。
//
// 注意：CEL 访问不存在的 key 会报错，用 label.key != null 检查存在性。
func (e *Eval) Evaluate(expr string) (bool, error) {
	if expr == "" {
		return true, nil
	}

	ast, issues := e.env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return false, fmt.Errorf("compile error: %v", issues.Err())
	}

	prg, err := e.env.Program(ast)
	if err != nil {
		return false, fmt.Errorf("program error: %v", err)
	}

	out, _, err := prg.Eval(e.buildInput())
	if err != nil {
		return false, fmt.Errorf("eval error: %v", err)
	}

	result, ok := out.Value().(bool)
	if !ok {
		return false, fmt.Errorf("expression must return boolean, got %T", out.Value())
	}
	return result, nil
}

// Validate 只编译不执行，用于在构建期拒绝非法表达式。
// 空表达式合法（恒真）。
func Validate(expr string) error {
	if expr == "" {
		return nil
	}
	env, err := getCELEnv()
	if err != nil {
		return err
	}
	ast, issues := env.Compile(expr)
	if issues != nil && issues.Err() != nil {
		return fmt.Errorf("compile error: %v", issues.Err())
	}
	if _, err := env.Program(ast); err != nil {
		return fmt.Errorf("program error: %v", err)
	}
	return nil
}

// buildInput 构建 CEL 表达式的输入数据
func (e *Eval) buildInput() map[string]interface{} {
	labels := make(map[string]interface{})
	labelAccessor := make(map[string]interface{})
	if e.item != nil {
		for k, v := range e.item.Labels {
			labels[k] = map[string]interface{}{
				"value":  v.Value,
				"source": v.Source,
			}
			// label.recall_source 直接返回 value
			labelAccessor[k] = v.Value
		}
	}

	item := map[string]interface{}{
		"id":     "",
		"score":  0.0,
		"labels": labels,
	}
	game := map[string]interface{}{}
	if e.item != nil {
		item["id"] = e.item.ID
		item["score"] = e.item.Score
		if g := e.item.Game; g != nil {
			game = map[string]interface{}{
				"title":          g.Title,
				"genres":         toAnySlice(g.Genres),
				"tags":           toAnySlice(g.Tags),
				"rating":         g.Rating,
				"release_year":   g.ReleaseYear,
				"platform":       g.Platform,
				"playtime_hours": g.PlaytimeHours,
				"price":          g.Price,
				"multiplayer":    g.Multiplayer,
				"difficulty":     g.Difficulty,
			}
		}
	}

	rctx := map[string]interface{}{}
	if e.rctx != nil {
		rctx = map[string]interface{}{
			"user_id": e.rctx.UserID,
			"scene":   e.rctx.Scene,
			"params":  e.rctx.Params,
		}
	}

	return map[string]interface{}{
		"item":  item,
		"game":  game,
		"label": labelAccessor,
		"rctx":  rctx,
	}
}

func toAnySlice(s []string) []interface{} {
	out := make([]interface{}, len(s))
	for i, v := range s {
		out[i] = v
	}
	return out
}
