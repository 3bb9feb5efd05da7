package app

import (
	"github.com/llehouerou/reel/internal/errmsg"
)

// SaveSettings stores the sort order and shuffle mode for the next run.
// The session itself is saved by the service persister after each change.
func (m *Model) SaveSettings() {
	if m.stateMgr == nil {
		return
	}
	settings, err := m.stateMgr.GetSettings()
	if err != nil {
		m.logger.Warn(errmsg.Format(errmsg.OpSettingsLoad, err))
		return
	}
	settings.SortOrder = string(m.svc.SortOrder())
	settings.Shuffle = m.svc.Shuffle()
	if err := m.stateMgr.SaveSettings(*settings); err != nil {
		m.errorMsg = errmsg.Format(errmsg.OpSettingsSave, err)
		m.logger.Error("save settings", "err", err)
	}
}
