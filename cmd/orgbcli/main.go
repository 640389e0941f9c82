// Command orgbcli allows performing basic operations on RGB devices through
// an OpenRGB server.
package main

import (
	"strings"

	homedir "github.com/mitchellh/go-homedir"
	"github.com/sirupsen/logrus"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/pdf/goopenrgb"
	"github.com/pdf/goopenrgb/common"
	"github.com/pdf/goopenrgb/tcpsocket"
)

var (
	client *goopenrgb.Client

	cfgFile      string
	flagLogLevel string

	logger = logrus.New()
	app    = &cobra.Command{
		Use:   `orgbcli`,
		Short: `orgbcli controls RGB devices through an OpenRGB server`,
		PersistentPreRun: func(c *cobra.Command, args []string) {
			setLogger()
		},
	}
)

func init() {
	goopenrgb.SetLogger(logger)

	app.PersistentFlags().StringVar(&cfgFile, `config`, ``, `config file (default is $HOME/.orgbcli/orgbcli.yaml)`)
	app.PersistentFlags().StringVarP(&flagLogLevel, `log-level`, `L`, `info`, `log level, one of: [debug,info,warn,error]`)
	app.PersistentFlags().String(`host`, `127.0.0.1`, `OpenRGB server host`)
	app.PersistentFlags().Int(`port`, int(common.DefaultPort), `OpenRGB server port`)
	app.PersistentFlags().String(`name`, common.DefaultClientName, `client name announced to the server`)
	app.PersistentFlags().Duration(`timeout`, common.DefaultTimeout, `timeout for receiving replies`)

	_ = viper.BindPFlag(`host`, app.PersistentFlags().Lookup(`host`))
	_ = viper.BindPFlag(`port`, app.PersistentFlags().Lookup(`port`))
	_ = viper.BindPFlag(`name`, app.PersistentFlags().Lookup(`name`))
	_ = viper.BindPFlag(`timeout`, app.PersistentFlags().Lookup(`timeout`))

	viper.SetEnvPrefix(`ORGBCLI`)
	viper.SetEnvKeyReplacer(strings.NewReplacer(`.`, `_`))
	viper.AutomaticEnv()

	cobra.OnInitialize(initConfig)

	app.AddCommand(cmdList)
	app.AddCommand(cmdInfo)
	app.AddCommand(cmdCount)
	app.AddCommand(cmdSetColor)
	app.AddCommand(cmdSetZoneColor)
	app.AddCommand(cmdSetLEDColor)
	app.AddCommand(cmdResizeZone)
	app.AddCommand(cmdMode)
	app.AddCommand(cmdProfiles)
	app.AddCommand(cmdSaveProfile)
	app.AddCommand(cmdLoadProfile)
	app.AddCommand(cmdDeleteProfile)
}

func main() {
	_ = app.Execute()
}

func initConfig() {
	if cfgFile != `` {
		viper.SetConfigFile(cfgFile)
	} else {
		home, err := homedir.Dir()
		if err != nil {
			logger.WithError(err).Fatalln(`Could not locate home directory`)
		}
		viper.AddConfigPath(`.`)
		viper.AddConfigPath(home + `/.orgbcli`)
		viper.SetConfigName(`orgbcli`)
	}

	if err := viper.ReadInConfig(); err == nil {
		logger.WithField(`file`, viper.ConfigFileUsed()).Debugln(`Loaded config`)
	}
}

func setLogger() {
	switch flagLogLevel {
	case `debug`:
		logger.Level = logrus.DebugLevel
	case `info`:
		logger.Level = logrus.InfoLevel
	case `warn`:
		logger.Level = logrus.WarnLevel
	case `error`:
		logger.Level = logrus.ErrorLevel
	default:
		logger.Level = logrus.InfoLevel
	}
}

func setupClient(c *cobra.Command, args []string) {
	client = goopenrgb.NewClient(viper.GetString(`name`), tcpsocket.New())
	status := client.Connect(viper.GetString(`host`), uint16(viper.GetInt(`port`)))
	if status != common.ConnectSuccess {
		logger.WithFields(logrus.Fields{
			`status`: status,
			`error`:  client.LastSystemError(),
		}).Fatalln(`Failed connecting to server`)
	}
	if timeout := viper.GetDuration(`timeout`); timeout != common.DefaultTimeout {
		client.SetTimeout(timeout)
	}
}

func closeClient(c *cobra.Command, args []string) {
	client.Disconnect()
}
