// Package game runs a single commit-reveal round against the computer.
//
// A Session picks the computer's move and a fresh 256-bit key as soon as it
// is created, and publishes only the HMAC-SHA256 of the move name. The human
// then submits a move index and Reveal discloses the computer's move, the key
// and the outcome, so the human can recompute the HMAC and confirm the
// computer did not change its mind.
//
// # Basic Usage
//
//	set := moves.MustNew("rock", "paper", "scissors")
//	s, err := game.NewSession(set)
//	if err != nil {
//	    return err
//	}
//	fmt.Println("HMAC:", s.Commitment())
//	res, err := s.Reveal(humanIndex)
//	if err != nil {
//	    return err
//	}
//	fmt.Println(res.Verdict(), res.Key)
//
// # Deterministic Testing
//
// WithRandom injects the byte source used for both the move draw and the key,
// so tests can force a known secret:
//
//	s, _ := game.NewSession(set, game.WithRandom(bytes.NewReader(seed)))
//
// # Lifecycle
//
// A session is Committed after NewSession and accepts exactly one Reveal.
// Abort discards the key without disclosing it; afterwards, as after a
// reveal, further calls return ErrSessionClosed.
package game
