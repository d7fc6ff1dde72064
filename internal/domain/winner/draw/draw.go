// Package draw 抽奖核心：资格过滤与均匀随机选择，不做任何 IO
package draw

import (
	"math/rand/v2"
	entryModel "sweeps_admin/internal/domain/entry/model"
	"sync"
)

// Eligible 排除已中奖邮箱后的参与记录，保持输入顺序
// 邮箱按原样精确比较，与中奖记录中保存的副本一致
func Eligible(entries []entryModel.Entry, winnerEmails []string) []entryModel.Entry {
	won := make(map[string]struct{}, len(winnerEmails))
	for _, e := range winnerEmails {
		won[e] = struct{}{}
	}

	eligible := make([]entryModel.Entry, 0, len(entries))
	for _, e := range entries {
		if _, ok := won[e.Email]; !ok {
			eligible = append(eligible, e)
		}
	}
	return eligible
}

// Selector 均匀随机选择器，非密码学安全，可并发使用
type Selector struct {
	mu  sync.Mutex
	rng *rand.Rand
}

// NewSelector 使用进程级随机种子
func NewSelector() *Selector {
	return NewSeededSelector(rand.Uint64(), rand.Uint64())
}

// NewSeededSelector 固定种子，结果可复现
func NewSeededSelector(seed1, seed2 uint64) *Selector {
	return &Selector{rng: rand.New(rand.NewPCG(seed1, seed2))}
}

// Pick 以 1/N 概率选出一条记录；空列表属于调用方错误，直接 panic
func (s *Selector) Pick(eligible []entryModel.Entry) entryModel.Entry {
	if len(eligible) == 0 {
		panic("draw: Pick called with no eligible entries")
	}

	s.mu.Lock()
	i := s.rng.IntN(len(eligible))
	s.mu.Unlock()

	return eligible[i]
}
