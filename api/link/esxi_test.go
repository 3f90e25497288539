package link

import (
	"testing"

	"github.com/golang/mock/gomock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/szmijews/mfd-network-adapter/platform"
	"github.com/szmijews/mfd-network-adapter/platform/mocks"
)

var (
	vibGetOptions  = platform.ExecOptions{StderrToStdout: true}
	adminOptions   = platform.ExecOptions{ExpectedReturnCodes: []int{0}}
	vibNotFound    = &platform.ExecResult{ReturnCode: 1, Stdout: "[NoMatchError]\n No VIB matching VIB search specification 'intnetcli'."}
	vibFound       = &platform.ExecResult{Stdout: "INT_bootbank_int-esx-intnetcli_700.1.8.1.0\n   Name: int-esx-intnetcli\n"}
	emptyExecReply = &platform.ExecResult{}
)

func expectIntnetCLI(conn *mocks.MockConnection, first, second *platform.ExecResult) {
	conn.EXPECT().ExecuteCommand("esxcli software vib get -n intnetcli", vibGetOptions).Return(first, nil)
	if second != nil {
		conn.EXPECT().ExecuteCommand("esxcli software vib get -n int-esx-intnetcli", vibGetOptions).Return(second, nil)
	}
}

func TestCheckIntnetCLIInstalled(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn := mocks.NewMockConnection(ctrl)
	gomock.InOrder(
		conn.EXPECT().ExecuteCommand("esxcli software vib get -n intnetcli", vibGetOptions).Return(vibNotFound, nil),
		conn.EXPECT().ExecuteCommand("esxcli software vib get -n int-esx-intnetcli", vibGetOptions).Return(vibFound, nil),
	)
	require.NoError(t, checkIntnetCLIInstalled(conn))

	conn = mocks.NewMockConnection(ctrl)
	expectIntnetCLI(conn, vibNotFound, vibNotFound)
	require.ErrorIs(t, checkIntnetCLIInstalled(conn), ErrIntnetCLINotInstalled)
}

func TestCheckIntnetCLIInstalledStopsAtFirstMatch(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn := mocks.NewMockConnection(ctrl)
	expectIntnetCLI(conn, vibFound, nil)
	require.NoError(t, checkIntnetCLIInstalled(conn))
}

func TestIsVIBInstalledPropagatesTransportError(t *testing.T) {
	_, err := IsVIBInstalled(platform.NewMockExecClient(true), "intnetcli")
	require.ErrorIs(t, err, platform.ErrMockExec)
}

func TestSetAdministrativePrivileges(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn := mocks.NewMockConnection(ctrl)
	expectIntnetCLI(conn, vibFound, nil)
	conn.EXPECT().ExecuteCommand("esxcli intnet admin link set -p enable -n interface_name", adminOptions).Return(emptyExecReply, nil)
	require.NoError(t, SetAdministrativePrivileges(conn, StateEnabled, "interface_name"))

	conn = mocks.NewMockConnection(ctrl)
	expectIntnetCLI(conn, vibFound, nil)
	conn.EXPECT().ExecuteCommand("esxcli intnet admin link set -p disable -n interface_name", adminOptions).Return(emptyExecReply, nil)
	require.NoError(t, SetAdministrativePrivileges(conn, StateDisabled, "interface_name"))
}

func TestSetAdministrativePrivilegesInvalidState(t *testing.T) {
	conn := platform.NewMockExecClient(false)

	err := SetAdministrativePrivileges(conn, State("on"), "interface_name")
	require.ErrorIs(t, err, ErrInvalidState)
	assert.Empty(t, conn.Calls())
}

func TestSetAdministrativePrivilegesNotInstalled(t *testing.T) {
	ctrl := gomock.NewController(t)

	conn := mocks.NewMockConnection(ctrl)
	expectIntnetCLI(conn, vibNotFound, vibNotFound)
	err := SetAdministrativePrivileges(conn, StateEnabled, "interface_name")
	require.ErrorIs(t, err, ErrIntnetCLINotInstalled)
}

func TestGetAdministrativePrivileges(t *testing.T) {
	tests := []struct {
		stdout string
		want   State
	}{
		{stdout: "Link privilege enabled for interface_name", want: StateEnabled},
		{stdout: "Link privilege disabled for interface_name\n", want: StateDisabled},
	}
	for _, tt := range tests {
		t.Run(tt.stdout, func(t *testing.T) {
			ctrl := gomock.NewController(t)
			conn := mocks.NewMockConnection(ctrl)
			expectIntnetCLI(conn, vibFound, nil)
			conn.EXPECT().
				ExecuteCommand("esxcli intnet admin link get -n interface_name", adminOptions).
				Return(&platform.ExecResult{Stdout: tt.stdout}, nil)

			state, err := GetAdministrativePrivileges(conn, "interface_name")
			require.NoError(t, err)
			assert.Equal(t, tt.want, state)
		})
	}
}

func TestGetAdministrativePrivilegesUnknownOutput(t *testing.T) {
	ctrl := gomock.NewController(t)
	conn := mocks.NewMockConnection(ctrl)
	expectIntnetCLI(conn, vibFound, nil)
	conn.EXPECT().
		ExecuteCommand("esxcli intnet admin link get -n interface_name", adminOptions).
		Return(&platform.ExecResult{Stdout: "garbage"}, nil)

	_, err := GetAdministrativePrivileges(conn, "interface_name")
	require.ErrorIs(t, err, ErrUnknownPrivilege)
}

func TestParseState(t *testing.T) {
	state, err := ParseState("Enabled")
	require.NoError(t, err)
	assert.Equal(t, StateEnabled, state)

	state, err = ParseState(" disabled\n")
	require.NoError(t, err)
	assert.Equal(t, StateDisabled, state)

	_, err = ParseState("on")
	require.ErrorIs(t, err, ErrInvalidState)
}
