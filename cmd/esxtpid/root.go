package main

import (
	"strings"

	"github.com/pkg/errors"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/spf13/cobra"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"github.com/szmijews/mfd-network-adapter/configuration"
	"github.com/szmijews/mfd-network-adapter/networkinterface"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/link"
	"github.com/szmijews/mfd-network-adapter/networkinterface/feature/vlan"
	"github.com/szmijews/mfd-network-adapter/platform"
	"github.com/szmijews/mfd-network-adapter/zaplog"
	"go.uber.org/zap"
	"go.uber.org/zap/zapcore"
)

const (
	// envPrefix is shared with package configuration: ESXI_<FLAG> sets any flag,
	// and an explicit flag wins over the environment.
	envPrefix  = "ESXI"
	osNameAuto = "auto"
)

type rootOptions struct {
	v *viper.Viper

	host           string
	port           int
	user           string
	password       string
	keyFile        string
	knownHostsFile string
	local          bool
	osName         string

	interfaceName   string
	logFile         string
	logLevel        string
	metricsTextfile string
}

// NewRootCmd returns the esxtpid command tree.
func NewRootCmd() *cobra.Command {
	o := &rootOptions{v: viper.New()}

	rootCmd := &cobra.Command{
		Use:          "esxtpid",
		Short:        "Get or set the VLAN TPID used by VFs of an ESXi network interface",
		SilenceUsage: true,
		CompletionOptions: cobra.CompletionOptions{
			DisableDefaultCmd: true,
		},
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			// read in environment variables that match
			o.v.SetEnvPrefix(envPrefix)
			o.v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
			o.v.AutomaticEnv()
			return bindFlags(o.v, cmd)
		},
	}

	flags := rootCmd.PersistentFlags()
	flags.StringVar(&o.host, "host", "", "ESXi host to connect to over ssh ($"+configuration.EnvHost+")")
	flags.IntVar(&o.port, "port", 0, "ssh port ($"+configuration.EnvPort+", default 22)")
	flags.StringVar(&o.user, "user", "", "ssh user ($"+configuration.EnvUser+", default root)")
	flags.StringVar(&o.password, "password", "", "ssh password ($"+configuration.EnvPassword+")")
	flags.StringVar(&o.keyFile, "key-file", "", "ssh private key file ($"+configuration.EnvKeyFile+")")
	flags.StringVar(&o.knownHostsFile, "known-hosts", "", "known_hosts file used to verify the host key")
	flags.BoolVar(&o.local, "local", false, "run esxcli on this machine instead of over ssh")
	flags.StringVar(&o.osName, "os", string(platform.OSNameESXi), "host operating system, or \"auto\" to detect it with uname")
	flags.StringVarP(&o.interfaceName, "interface", "n", "", "network interface name, e.g. vmnic1")
	flags.StringVar(&o.logFile, "log-file", "", "log file (default stderr)")
	flags.StringVar(&o.logLevel, "log-level", "warn", "log level")
	flags.StringVar(&o.metricsTextfile, "metrics-textfile", "", "write command metrics to this file in the prometheus text format")

	rootCmd.AddCommand(newGetCmd(o), newSetCmd(o), newLinkPrivilegeCmd(o))

	return rootCmd
}

// bindFlags binds vars from env to pflags
func bindFlags(v *viper.Viper, cmd *cobra.Command) error {
	if err := v.BindPFlags(cmd.Flags()); err != nil {
		return errors.Wrap(err, "failed to bind flags")
	}

	var setErr error
	cmd.Flags().VisitAll(func(flag *pflag.Flag) {
		if setErr != nil || flag.Changed {
			return
		}
		if v.IsSet(flag.Name) && v.GetString(flag.Name) != "" {
			setErr = cmd.Flags().Set(flag.Name, v.GetString(flag.Name))
		}
	})
	return errors.Wrap(setErr, "failed to set flag from environment")
}

func (o *rootOptions) newLogger() (*zap.Logger, error) {
	level, err := zapcore.ParseLevel(o.logLevel)
	if err != nil {
		return nil, errors.Wrapf(err, "invalid log level %q", o.logLevel)
	}

	cfg := zaplog.LoggerCfg
	cfg.Level = level
	cfg.LogPath = o.logFile
	return zaplog.InitZapLog(&cfg), nil
}

// connect returns the connection to run commands over and a func releasing it.
func (o *rootOptions) connect(logger *zap.Logger) (platform.Connection, func(), error) {
	if o.local {
		return platform.NewExecClient(logger), func() {}, nil
	}

	cfg, err := o.sshConfig()
	if err != nil {
		return nil, nil, err
	}
	client, err := platform.NewSSHClient(cfg, logger)
	if err != nil {
		return nil, nil, err
	}
	return client, func() {
		if err := client.Close(); err != nil {
			logger.Warn("Failed to close ssh client", zap.Error(err))
		}
	}, nil
}

func (o *rootOptions) sshConfig() (platform.SSHConfig, error) {
	cfg := platform.SSHConfig{
		Host:           o.host,
		Port:           o.port,
		User:           o.user,
		Password:       o.password,
		KeyFile:        o.keyFile,
		KnownHostsFile: o.knownHostsFile,
	}

	if cfg.Host == "" {
		host, err := configuration.Host()
		if err != nil {
			return cfg, errors.Wrap(err, "no --host given")
		}
		cfg.Host = host
	}
	if cfg.Port == 0 {
		port, err := configuration.Port()
		if err != nil {
			return cfg, err
		}
		cfg.Port = port
	}
	if cfg.User == "" {
		cfg.User = configuration.User()
	}
	if cfg.Password == "" {
		cfg.Password = configuration.Password()
	}
	if cfg.KeyFile == "" {
		cfg.KeyFile = configuration.KeyFile()
	}
	return cfg, nil
}

func (o *rootOptions) resolveOSName(conn platform.Connection) (platform.OSName, error) {
	if strings.EqualFold(o.osName, osNameAuto) {
		return platform.DetectOSName(conn)
	}
	return platform.ParseOSName(o.osName)
}

// runVLAN hands fn the VLAN feature of the selected interface.
func (o *rootOptions) runVLAN(fn func(vlan.Feature) error) error {
	return o.runInterface(func(iface *networkinterface.NetworkInterface) error {
		feature, err := iface.VLAN()
		if err != nil {
			return err
		}
		return fn(feature)
	})
}

// runLink hands fn the link feature of the selected interface.
func (o *rootOptions) runLink(fn func(link.Feature) error) error {
	return o.runInterface(func(iface *networkinterface.NetworkInterface) error {
		feature, err := iface.Link()
		if err != nil {
			return err
		}
		return fn(feature)
	})
}

func (o *rootOptions) runInterface(fn func(*networkinterface.NetworkInterface) error) error {
	if o.interfaceName == "" {
		return errors.New("--interface is required")
	}

	logger, err := o.newLogger()
	if err != nil {
		return err
	}
	defer logger.Sync() //nolint:errcheck // nothing to do on a failed flush

	conn, release, err := o.connect(logger)
	if err != nil {
		return err
	}
	defer release()

	osName, err := o.resolveOSName(conn)
	if err != nil {
		return err
	}

	iface, err := networkinterface.NewNetworkInterface(conn, osName, networkinterface.InterfaceInfo{Name: o.interfaceName}, logger)
	if err != nil {
		return err
	}

	runErr := fn(iface)
	if o.metricsTextfile != "" {
		if err := prometheus.WriteToTextfile(o.metricsTextfile, platform.MetricsRegistry); err != nil {
			logger.Error("Failed to write metrics", zap.String("path", o.metricsTextfile), zap.Error(err))
		}
	}
	return runErr
}
