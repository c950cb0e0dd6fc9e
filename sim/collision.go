package sim

import "github.com/zucenko/stealth/model"

// Check ends a playing session when a guard shares the player's cell or the
// player stands on the exit. Capture is tested first, so a guard on the exit
// cell still wins over the mission.
func (m *Machine) Check(s model.Session) (model.Session, *model.Result) {
	if s.State != model.SS_PLAYING {
		return s, nil
	}
	if s.AgentAt(s.Player) {
		s.State = model.SS_LOST
		return s, &model.Result{Message: model.MSG_CAUGHT, Score: s.Score}
	}
	if s.Player == s.Objective {
		bonus := s.TimeRemaining * m.cfg.TimeBonus
		s.Score = s.Score + bonus + m.cfg.CompletionBonus
		s.State = model.SS_WON
		return s, &model.Result{Message: model.MSG_COMPLETE, Won: true, Score: s.Score, TimeBonus: bonus}
	}
	return s, nil
}
