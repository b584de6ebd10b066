package setup

import (
	"os"
	"testing"

	"github.com/agendaun/user-setup/src/setup/setuptest"
)

func TestMain(m *testing.M) {
	os.Exit(setuptest.SetupAndRunTestSuite(m))
}
