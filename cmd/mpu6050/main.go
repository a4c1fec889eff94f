//go:build !tinygo

// mpu6050 reads, calibrates and integrates an MPU-6050 from a Linux host's I2C bus.
package main

import (
	"os"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"
)

const (
	flagBus        = "bus"
	flagAltAddress = "alt-address"
	flagAxis       = "axis"
	flagSamples    = "samples"
	flagCount      = "count"
	flagInterval   = "interval"
	flagDebug      = "debug"
)

func main() {
	var logger *zap.SugaredLogger

	app := &cli.App{
		Name:  "mpu6050",
		Usage: "read an MPU-6050 gyro/accelerometer over I2C",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:  flagBus,
				Usage: "I2C bus name or number, empty for the first one found",
			},
			&cli.BoolFlag{
				Name:  flagAltAddress,
				Usage: "use the AD0-high address 0x69",
			},
			&cli.StringFlag{
				Name:  flagAxis,
				Value: "x",
				Usage: "gyro axis to integrate (x, y or z)",
			},
			&cli.IntFlag{
				Name:  flagSamples,
				Value: 1000,
				Usage: "gyro readings to average when calibrating",
			},
			&cli.BoolFlag{
				Name:    flagDebug,
				Aliases: []string{"vvv"},
				Usage:   "enable debug logging",
			},
		},
		Before: func(c *cli.Context) error {
			var (
				zl  *zap.Logger
				err error
			)
			if c.Bool(flagDebug) {
				zl, err = zap.NewDevelopment()
			} else {
				zl, err = zap.NewProduction()
			}
			if err != nil {
				return err
			}
			logger = zl.Sugar()
			return nil
		},
		After: func(c *cli.Context) error {
			if logger != nil {
				//nolint:errcheck
				logger.Sync()
			}
			return nil
		},
		Commands: []*cli.Command{
			{
				Name:  "read",
				Usage: "print one acceleration, rotation and temperature reading",
				Action: func(c *cli.Context) error {
					return withSensor(c, logger, func(s *sensor) error {
						return s.read(c.App.Writer)
					})
				},
			},
			{
				Name:  "calibrate",
				Usage: "measure and print the gyro bias; keep the sensor still",
				Action: func(c *cli.Context) error {
					return withSensor(c, logger, func(s *sensor) error {
						return s.calibrate(c.App.Writer, c.Int(flagSamples))
					})
				},
			},
			{
				Name:  "theta",
				Usage: "calibrate, then print the integrated angle",
				Flags: []cli.Flag{
					&cli.IntFlag{
						Name:  flagCount,
						Value: 30,
						Usage: "angle readings to print",
					},
					&cli.DurationFlag{
						Name:  flagInterval,
						Value: defaultInterval,
						Usage: "time between angle readings",
					},
				},
				Action: func(c *cli.Context) error {
					return withSensor(c, logger, func(s *sensor) error {
						if err := s.calibrate(c.App.Writer, c.Int(flagSamples)); err != nil {
							return err
						}
						return s.theta(c.App.Writer, c.Int(flagCount), c.Duration(flagInterval))
					})
				},
			},
		},
	}

	if err := app.Run(os.Args); err != nil {
		if logger != nil {
			logger.Fatal(err)
		}
		os.Stderr.WriteString(err.Error() + "\n")
		os.Exit(1)
	}
}
