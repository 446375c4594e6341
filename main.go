package main

import (
	"context"
	"fmt"
	"log"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/eclipse/paho.mqtt.golang"
	"github.com/guptarohit/asciigraph"
	"github.com/joho/godotenv"
	"github.com/matt-g-everett/ledtween/animation"
	"github.com/matt-g-everett/ledtween/api"
	"github.com/matt-g-everett/ledtween/easing"
	"github.com/matt-g-everett/ledtween/scene"
	"github.com/matt-g-everett/ledtween/stream"
	"github.com/matt-g-everett/ledtween/util"
	"github.com/spf13/cobra"
)

var (
	configPath string
	scenePath  string
	noMqtt     bool
	samples    int
	height     int
	pulse      bool
)

type app struct {
	Config     stream.Config
	Client     mqtt.Client
	Doc        *scene.Document
	Scheduler  *animation.Scheduler
	Program    *scene.Program
	Streamer   *stream.Streamer
	Controller *stream.Controller
}

func newApp() *app {
	a := new(app)
	a.Doc = scene.NewDocument()
	return a
}

func (a *app) handleOnConnect(client mqtt.Client) {
	log.Println("Connected")
	if err := a.Controller.Subscribe(); err != nil {
		log.Println(err)
	}
}

func (a *app) readConfig(path string) error {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using system environment variables")
	}

	config, err := stream.LoadConfig(path)
	if err != nil {
		return err
	}
	a.Config = config
	if scenePath != "" {
		a.Config.Scene = scenePath
	}
	return nil
}

func (a *app) connect() {
	options := mqtt.NewClientOptions().
		AddBroker(a.Config.Mqtt.URL).
		SetClientID(a.Config.Mqtt.ClientID).
		SetUsername(a.Config.Mqtt.Username).
		SetPassword(a.Config.Mqtt.Password).
		SetKeepAlive(30 * time.Second).
		SetPingTimeout(5 * time.Second).
		SetOnConnectHandler(a.handleOnConnect)
	a.Client = mqtt.NewClient(options)
}

func (a *app) build(ctx context.Context) error {
	script, err := scene.LoadScript(a.Config.Scene)
	if err != nil {
		return err
	}
	script.Populate(a.Doc)

	var accessor animation.Accessor = a.Doc
	var publisher stream.Publisher
	if a.Client != nil {
		publisher = stream.NewMqttPublisher(a.Client, 0)
		accessor = stream.NewMirror(a.Doc, publisher, a.Config.Mqtt.Topics.Values)
	}

	a.Scheduler = animation.NewScheduler(animation.Options{
		Timer:        animation.NewTickerTimer(ctx),
		Interval:     time.Duration(a.Config.Engine.TickIntervalMs) * time.Millisecond,
		Selector:     a.Doc,
		Accessor:     accessor,
		DefaultUnits: a.Config.Engine.DefaultUnits,
	})

	a.Program, err = script.Build(a.Scheduler, scene.Callbacks{
		"log": func(p float64) { log.Printf("progress %.3f", p) },
	})
	if err != nil {
		return err
	}

	if publisher != nil {
		a.Streamer = stream.NewStreamer(a.Config, publisher, a.Doc)
		a.Controller = stream.NewController(a.Config, a.Client, a.Program)
	}
	return nil
}

func (a *app) run(ctx context.Context) error {
	if a.Client != nil {
		if token := a.Client.Connect(); token.Wait() && token.Error() != nil {
			return token.Error()
		}
		defer a.Client.Disconnect(250)
		go a.Streamer.Run(ctx)
	}

	go func() {
		if err := api.NewApi(a.Doc, a.Config.Api.Addr).Serve(); err != nil {
			log.Println(err)
		}
	}()

	a.Program.Play()
	<-ctx.Done()
	return nil
}

func runScene(cmd *cobra.Command, args []string) error {
	mqtt.ERROR = log.New(os.Stdout, "", 0)

	a := newApp()
	if err := a.readConfig(configPath); err != nil {
		return err
	}
	log.Printf("Config: scene=%s broker=%s", a.Config.Scene, a.Config.Mqtt.URL)

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if !noMqtt && a.Config.Mqtt.URL != "" {
		a.connect()
	}
	if err := a.build(ctx); err != nil {
		return err
	}
	return a.run(ctx)
}

func plotCurve(cmd *cobra.Command, args []string) error {
	name := args[0]
	fn, ok := easing.Default().Find(name)
	if !ok {
		return fmt.Errorf("unknown easing %q", name)
	}

	data := util.SampleCurve(fn, samples)
	if pulse {
		data = util.GenerateLut(fn, samples)
	}
	fmt.Println(asciigraph.Plot(data, asciigraph.Height(height), asciigraph.Caption(name)))
	return nil
}

func listEasings(cmd *cobra.Command, args []string) {
	for _, name := range easing.Default().Names() {
		fmt.Println(name)
	}
}

func main() {
	rootCmd := &cobra.Command{
		Use:   "ledtween",
		Short: "tween LED and style properties from a shared timer",
	}

	runCmd := &cobra.Command{
		Use:   "run",
		Short: "play a scene script",
		Args:  cobra.NoArgs,
		RunE:  runScene,
	}
	runCmd.Flags().StringVar(&configPath, "config", "config.yaml", "YAML config file")
	runCmd.Flags().StringVar(&scenePath, "scene", "", "scene script (overrides config)")
	runCmd.Flags().BoolVar(&noMqtt, "no-mqtt", false, "run without a broker")

	curveCmd := &cobra.Command{
		Use:   "curve [easing]",
		Short: "plot an easing curve",
		Args:  cobra.ExactArgs(1),
		RunE:  plotCurve,
	}
	curveCmd.Flags().IntVar(&samples, "samples", 60, "number of samples")
	curveCmd.Flags().IntVar(&height, "height", 12, "plot height")
	curveCmd.Flags().BoolVar(&pulse, "pulse", false, "plot the curve rising then falling")

	easingsCmd := &cobra.Command{
		Use:   "easings",
		Short: "list easing names",
		Args:  cobra.NoArgs,
		Run:   listEasings,
	}

	rootCmd.AddCommand(runCmd, curveCmd, easingsCmd)
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
