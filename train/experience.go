package train

// Experience is one observed transition: doing Action in State yielded
// Reward and led to Next. End marks Next as terminal.
type Experience[S, A comparable] struct {
	State  S
	Action A
	Reward float32
	Next   S
	End    bool
}

type Experiences[S, A comparable] []Experience[S, A]

// TotalReward returns the undiscounted return of the trajectory.
func (es Experiences[S, A]) TotalReward() float32 {
	var total float32
	for _, e := range es {
		total += e.Reward
	}
	return total
}
