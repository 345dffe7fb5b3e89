package train_test

import (
	"errors"
	"testing"

	"github.com/sw965/heron"
	"github.com/sw965/heron/ql"
	"github.com/sw965/heron/train"
	"github.com/sw965/omw/mathx/randx"
)

// 一直線に進むだけの決定的な環境。状態は0からendまでの整数で、
// 行動は "fwd" のみ。endに到達した時だけ報酬1を得る。
func newChainLogic(end int) train.Logic[int, string] {
	return train.Logic[int, string]{
		LegalActionsFunc: func(state int) []string {
			return []string{"fwd"}
		},
		TransitFunc: func(state int, action string) (int, error) {
			return state + 1, nil
		},
		RewardFunc: func(state int, action string, next int) float32 {
			if next == end {
				return 1.0
			}
			return 0.0
		},
		IsEndFunc: func(state int) bool {
			return state == end
		},
	}
}

func newChainEngine(t *testing.T, end int) train.Engine[int, string] {
	t.Helper()
	update, err := ql.New(1.0, 1.0)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	return train.Engine[int, string]{
		Logic:      newChainLogic(end),
		SelectFunc: train.MaxSelectFunc[int, string],
		UpdateFunc: update,
		MaxSteps:   100,
	}
}

func TestLogicValidate(t *testing.T) {
	valid := newChainLogic(3)

	tests := []struct {
		name    string
		mutate  func(*train.Logic[int, string])
		wantErr error
	}{
		{
			name:   "正常",
			mutate: func(l *train.Logic[int, string]) {},
		},
		{
			name:    "異常_LegalActionsFuncがnil",
			mutate:  func(l *train.Logic[int, string]) { l.LegalActionsFunc = nil },
			wantErr: train.ErrNilLogicFunc,
		},
		{
			name:    "異常_TransitFuncがnil",
			mutate:  func(l *train.Logic[int, string]) { l.TransitFunc = nil },
			wantErr: train.ErrNilLogicFunc,
		},
		{
			name:    "異常_RewardFuncがnil",
			mutate:  func(l *train.Logic[int, string]) { l.RewardFunc = nil },
			wantErr: train.ErrNilLogicFunc,
		},
		{
			name:    "異常_IsEndFuncがnil",
			mutate:  func(l *train.Logic[int, string]) { l.IsEndFunc = nil },
			wantErr: train.ErrNilLogicFunc,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Helper()
			logic := valid
			tc.mutate(&logic)
			err := logic.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("予期しないエラー: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want: %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestEngineValidate(t *testing.T) {
	valid := newChainEngine(t, 3)

	tests := []struct {
		name    string
		mutate  func(*train.Engine[int, string])
		wantErr error
	}{
		{
			name:   "正常",
			mutate: func(e *train.Engine[int, string]) {},
		},
		{
			name:    "異常_SelectFuncがnil",
			mutate:  func(e *train.Engine[int, string]) { e.SelectFunc = nil },
			wantErr: train.ErrNilEngineFunc,
		},
		{
			name:    "異常_UpdateFuncがnil",
			mutate:  func(e *train.Engine[int, string]) { e.UpdateFunc = nil },
			wantErr: train.ErrNilEngineFunc,
		},
		{
			name:    "異常_MaxStepsが0",
			mutate:  func(e *train.Engine[int, string]) { e.MaxSteps = 0 },
			wantErr: train.ErrInvalidMaxSteps,
		},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			t.Helper()
			engine := valid
			tc.mutate(&engine)
			err := engine.Validate()
			if tc.wantErr == nil {
				if err != nil {
					t.Fatalf("予期しないエラー: %v", err)
				}
				return
			}
			if !errors.Is(err, tc.wantErr) {
				t.Fatalf("want: %v, got: %v", tc.wantErr, err)
			}
		})
	}
}

func TestMaxSelectFunc(t *testing.T) {
	e := heron.NewEpisode[string, string]("s0")
	updates := map[string]float32{"a": 1.0, "b": 2.0, "c": 0.5}
	for action, v := range updates {
		if err := e.Update(heron.NewPolicy("s0", action), v); err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
	}

	rng := randx.NewPCGFromGlobalSeed()
	legalActions := []string{"a", "b", "c"}

	for i := 0; i < 10; i++ {
		got, err := train.MaxSelectFunc(e, "s0", legalActions, rng)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got != "b" {
			t.Fatalf("want: b, got: %s", got)
		}
	}

	// 未知の状態では全行動が同値0となり、どれかが選ばれる
	got, err := train.MaxSelectFunc(e, "s1", legalActions, rng)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if got != "a" && got != "b" && got != "c" {
		t.Errorf("合法手以外が選ばれた: %s", got)
	}

	if _, err := train.MaxSelectFunc(e, "s0", nil, rng); !errors.Is(err, train.ErrEmptyLegalActions) {
		t.Fatalf("want: %v, got: %v", train.ErrEmptyLegalActions, err)
	}
}

func TestNewEpsilonGreedySelectFunc(t *testing.T) {
	if _, err := train.NewEpsilonGreedySelectFunc[string, string](-0.1); err == nil {
		t.Fatalf("エラーを期待したが、nilが返された")
	}
	if _, err := train.NewEpsilonGreedySelectFunc[string, string](1.1); err == nil {
		t.Fatalf("エラーを期待したが、nilが返された")
	}

	// epsilon=0 は常に貪欲
	selectFunc, err := train.NewEpsilonGreedySelectFunc[string, string](0.0)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	e := heron.NewEpisode[string, string]("s0")
	if err := e.Update(heron.NewPolicy("s0", "best"), 1.0); err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	rng := randx.NewPCGFromGlobalSeed()
	for i := 0; i < 10; i++ {
		got, err := selectFunc(e, "s0", []string{"best", "other"}, rng)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if got != "best" {
			t.Fatalf("want: best, got: %s", got)
		}
	}
}

func TestNewSoftmaxSelectFunc(t *testing.T) {
	for _, temperature := range []float32{0.0, -1.0} {
		if _, err := train.NewSoftmaxSelectFunc[string, string](temperature); err == nil {
			t.Fatalf("エラーを期待したが、nilが返された: temperature=%v", temperature)
		}
	}

	selectFunc, err := train.NewSoftmaxSelectFunc[string, string](1.0)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	e := heron.NewEpisode[string, string]("s0")
	rng := randx.NewPCGFromGlobalSeed()
	got, err := selectFunc(e, "s0", []string{"a", "b"}, rng)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}
	if got != "a" && got != "b" {
		t.Errorf("合法手以外が選ばれた: %s", got)
	}

	if _, err := selectFunc(e, "s0", nil, rng); !errors.Is(err, train.ErrEmptyLegalActions) {
		t.Fatalf("want: %v, got: %v", train.ErrEmptyLegalActions, err)
	}
}

// 学習率1・割引率1のQ学習では、一直線の環境を繰り返し実行すると、
// 報酬がルートへ1ステップずつ伝播していく。
func TestEngineContinueEpisodeBackpropagation(t *testing.T) {
	engine := newChainEngine(t, 3)
	rng := randx.NewPCGFromGlobalSeed()
	episode := heron.NewEpisode[int, string](0)

	wantPerSweep := [][]float32{
		{0.0, 0.0, 1.0},
		{0.0, 1.0, 1.0},
		{1.0, 1.0, 1.0},
	}

	for sweep, wants := range wantPerSweep {
		experiences, err := engine.ContinueEpisode(episode, 0, rng)
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if len(experiences) != 3 {
			t.Fatalf("遷移数: want: 3, got: %d", len(experiences))
		}
		if got := experiences.TotalReward(); got != 1.0 {
			t.Fatalf("TotalReward: want: 1.0, got: %v", got)
		}

		for state, want := range wants {
			got, err := episode.Value(heron.NewPolicy(state, "fwd"))
			if err != nil {
				t.Fatalf("sweep %d: 予期しないエラー: %v", sweep, err)
			}
			if got != want {
				t.Errorf("sweep %d, state %d: want: %v, got: %v", sweep, state, got, want)
			}
		}
	}

	if episode.Len() != 3 {
		t.Errorf("Len: want: 3, got: %d", episode.Len())
	}
}

func TestEngineRunEpisodes(t *testing.T) {
	engine := newChainEngine(t, 3)
	inits := []int{0, 0, 0, 0}
	rngs := randx.NewPCGs(2)

	episodes, experiencess, err := engine.RunEpisodes(inits, rngs)
	if err != nil {
		t.Fatalf("予期しないエラー: %v", err)
	}

	if len(episodes) != len(inits) {
		t.Fatalf("エピソード数: want: %d, got: %d", len(inits), len(episodes))
	}

	for i, episode := range episodes {
		root, err := episode.Root()
		if err != nil {
			t.Fatalf("予期しないエラー: %v", err)
		}
		if root != 0 {
			t.Errorf("ルート: want: 0, got: %d", root)
		}
		if episode.Len() != 3 {
			t.Errorf("episode %d: Len: want: 3, got: %d", i, episode.Len())
		}
		if got := experiencess[i].TotalReward(); got != 1.0 {
			t.Errorf("episode %d: TotalReward: want: 1.0, got: %v", i, got)
		}
	}

	report := train.NewReport(experiencess)
	if report.Episodes != len(inits) {
		t.Errorf("Report.Episodes: want: %d, got: %d", len(inits), report.Episodes)
	}
	if report.Mean != 1.0 || report.Min != 1.0 || report.Max != 1.0 {
		t.Errorf("Reportの収益統計が不正: %+v", report)
	}

	if _, _, err := engine.RunEpisodes(inits, nil); !errors.Is(err, train.ErrEmptyRngs) {
		t.Fatalf("want: %v, got: %v", train.ErrEmptyRngs, err)
	}
}
