package engine

import (
	"context"
	"log"
	"math/rand"

	"github.com/ludokit/ludokit/core"
	"github.com/ludokit/ludokit/model"
)

// TrainingExample 是一条训练样本：用户对游戏的真实评分。
type TrainingExample struct {
	UserID string
	GameID string
	Rating float64 // 0-10
}

// lossLogInterval 控制训练损失的打印频率（首个 epoch + 每 10 个）。
const lossLogInterval = 10

// Train 用交互反馈微调投影塔，并在结束后重建全量嵌入。
//
// 训练循环（每个 epoch）：
//  1. 打乱样本顺序（有意不固定种子，这是整个引擎唯一的非确定性来源）
//  2. 对每条样本：用户/游戏各自编码、投影，pred = dot(userEmb, gameEmb)，
//     target = rating/10，损失为平方误差
//  3. 输出层统一更新：delta = lr · 0.01 · 2 · (pred − target)
//
// 引用了未知 userID/gameID 的样本静默跳过（数据容错）；
// epochs = 0 时权重与嵌入均保持原样（无操作）。
func (e *Engine) Train(ctx context.Context, examples []TrainingExample, epochs int, learningRate float64) error {
	if epochs <= 0 || len(examples) == 0 {
		return nil
	}
	if learningRate <= 0 {
		return core.NewDomainError(core.ModuleEngine, core.ErrorCodeInvalidInput,
			"engine: learning rate must be positive")
	}

	resolved, err := e.resolveExamples(ctx, examples)
	if err != nil {
		return err
	}
	if len(resolved) == 0 {
		return nil
	}

	shuffled := make([]*resolvedExample, len(resolved))
	copy(shuffled, resolved)

	for epoch := 1; epoch <= epochs; epoch++ {
		rand.Shuffle(len(shuffled), func(i, j int) {
			shuffled[i], shuffled[j] = shuffled[j], shuffled[i]
		})

		totalLoss := 0.0
		for _, ex := range shuffled {
			loss, err := e.trainStep(ex, learningRate)
			if err != nil {
				return err
			}
			totalLoss += loss
		}

		if epoch == 1 || epoch%lossLogInterval == 0 {
			log.Printf("engine: train epoch %d/%d, mean loss %.6f",
				epoch, epochs, totalLoss/float64(len(shuffled)))
		}
	}

	return e.RefreshEmbeddings(ctx)
}

type resolvedExample struct {
	userFeatures []float64
	game         *core.Game
	target       float64
}

// resolveExamples 把 (userID, gameID, rating) 样本解析为特征/目标对。
// 未知 ID 静默跳过；画像查询失败（非 NOT_FOUND）向上返回。
func (e *Engine) resolveExamples(ctx context.Context, examples []TrainingExample) ([]*resolvedExample, error) {
	profiles := make(map[string]*core.UserProfile)

	out := make([]*resolvedExample, 0, len(examples))
	for _, ex := range examples {
		game, ok := e.byID[ex.GameID]
		if !ok {
			continue
		}

		profile, seen := profiles[ex.UserID]
		if !seen {
			if e.profiles == nil {
				continue
			}
			p, err := e.profiles.GetProfile(ctx, ex.UserID)
			if err != nil {
				if !core.IsNotFound(err) {
					return nil, err
				}
				p = nil
			}
			profiles[ex.UserID] = p
			profile = p
		}
		if profile == nil {
			continue
		}

		target := ex.Rating / 10.0
		if target < 0 {
			target = 0
		}
		if target > 1 {
			target = 1
		}

		out = append(out, &resolvedExample{
			userFeatures: e.encoder.EncodeUserFromHistory(profile, e.games),
			game:         game,
			target:       target,
		})
	}
	return out, nil
}

// trainStep 执行单样本前向 + 输出层更新，返回该样本的平方误差。
func (e *Engine) trainStep(ex *resolvedExample, learningRate float64) (float64, error) {
	userEmb, err := e.tower.Project(ex.userFeatures)
	if err != nil {
		return 0, err
	}
	gameEmb, err := e.tower.Project(e.encoder.EncodeGame(ex.game))
	if err != nil {
		return 0, err
	}

	pred := model.Dot(userEmb, gameEmb)
	diff := pred - ex.target
	e.tower.AdjustOutputLayer(learningRate * 0.01 * 2.0 * diff)
	return diff * diff, nil
}
