package lifecycle

import (
	"github.com/sirupsen/logrus"
)

// defaultLogger receives disposal failures from registries and dispatchers
// that were not given their own logger via WithLogger.
var defaultLogger logrus.FieldLogger = logrus.StandardLogger()

// SetLogger replaces the package-wide logger. Call it during program
// initialization, before registries or dispatchers are in use.
func SetLogger(l logrus.FieldLogger) {
	if l != nil {
		defaultLogger = l
	}
}
