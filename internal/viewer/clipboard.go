package viewer

import (
	"github.com/atotto/clipboard"
	"github.com/sirupsen/logrus"

	"github.com/Garsondee/Settlement-Replay/internal/logger"
	"github.com/Garsondee/Settlement-Replay/internal/render"
)

func writeClipboard(s string) error {
	return clipboard.WriteAll(s)
}

// copyReport puts the current frame report on the clipboard.
func (v *Viewer) copyReport() {
	idx := v.ctrl.Index()
	report := render.FrameReport(v.rep, idx, v.inspector.selected, v.labels)
	if err := v.copyText(report); err != nil {
		logger.Log.WithError(err).Warn("copy frame report")
		v.flash("copy failed: " + err.Error())
		return
	}
	logger.Log.WithFields(logrus.Fields{"frame": idx, "bytes": len(report)}).Debug("frame report copied")
	v.flash("frame report copied")
}
