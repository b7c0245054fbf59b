package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/TomTonic/rtrand"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
	"github.com/spf13/viper"
	"go.uber.org/zap"
)

func main() {
	flags := pflag.NewFlagSet("rtrand-example", pflag.ExitOnError)
	flags.String("source", "dprng", "generator: dprng, pcg32, chacha20, chacha8, mt19937, xoshiro, cprng, secure")
	flags.Uint64("seed", 0x1234567890ABCDEF, "seed for deterministic generators")
	flags.String("op", "shuffle", "operation: shuffle, choose, sample, weighted, range, float, bytes")
	flags.Int("n", 10, "population size")
	flags.Int("k", 3, "sample size")
	flags.String("weights", "1,2,3,4", "comma separated weights for op=weighted")
	flags.Int64("low", 0, "lower bound for op=range")
	flags.Int64("high", 100, "upper bound (exclusive) for op=range")
	flags.Bool("verbose", false, "log debug output")
	_ = flags.Parse(os.Args[1:])

	v := viper.New()
	v.SetEnvPrefix("RTRAND")
	v.SetEnvKeyReplacer(strings.NewReplacer("-", "_"))
	v.AutomaticEnv()
	if err := v.BindPFlags(flags); err != nil {
		panic(err)
	}

	logger := newLogger(v.GetBool("verbose"))
	defer func() { _ = logger.Sync() }()

	src, err := newSource(v.GetString("source"), v.GetUint64("seed"), logger)
	if err != nil {
		logger.Fatal("creating source", zap.Error(err))
	}
	logger.Debug("source ready", zap.String("source", v.GetString("source")), zap.Uint64("seed", v.GetUint64("seed")))

	if err := run(src, v); err != nil {
		logger.Fatal("operation failed", zap.String("op", v.GetString("op")), zap.Error(err))
	}
}

func newLogger(verbose bool) *zap.Logger {
	var (
		logger *zap.Logger
		err    error
	)
	if verbose {
		logger, err = zap.NewDevelopment()
	} else {
		logger, err = zap.NewProduction()
	}
	if err != nil {
		return zap.NewNop()
	}
	return logger
}

func newSource(name string, seed uint64, logger *zap.Logger) (rtrand.Source, error) {
	var key [32]byte
	rtrand.FillViaUint64(rtrand.NewDPRNG(seed), key[:])
	switch name {
	case "dprng":
		return rtrand.NewDPRNG(seed), nil
	case "pcg32":
		return rtrand.NewPcg32(seed, 0), nil
	case "chacha20":
		return rtrand.ChaCha20FromUint64(seed), nil
	case "chacha8":
		return rtrand.NewChaCha8(key), nil
	case "mt19937":
		return rtrand.NewMT19937(seed), nil
	case "xoshiro":
		return rtrand.NewXoshiro256(seed), nil
	case "cprng":
		return rtrand.TryNewCPRNG(4096)
	case "secure":
		return rtrand.NewSecureSource(rtrand.WithLogger(logger))
	}
	return nil, errors.Errorf("unknown source %q", name)
}

func run(src rtrand.Source, v *viper.Viper) error {
	n, k := v.GetInt("n"), v.GetInt("k")
	population := make([]int, max(n, 0))
	for i := range population {
		population[i] = i
	}
	switch op := v.GetString("op"); op {
	case "shuffle":
		rtrand.Shuffle(src, population)
		fmt.Println(population)
	case "choose":
		x, err := rtrand.Choose(src, population)
		if err != nil {
			return err
		}
		fmt.Println(x)
	case "sample":
		xs, err := rtrand.ChooseMultiple(src, population, k)
		if err != nil {
			return err
		}
		fmt.Println(xs)
	case "weighted":
		weights, err := parseWeights(v.GetString("weights"))
		if err != nil {
			return err
		}
		wi, err := rtrand.NewWeightedIndex(weights)
		if err != nil {
			return err
		}
		fmt.Println(rtrand.SampleN(src, wi, k))
	case "range":
		u, err := rtrand.NewUniformInt(v.GetInt64("low"), v.GetInt64("high"))
		if err != nil {
			return err
		}
		fmt.Println(rtrand.SampleN(src, u, k))
	case "float":
		fmt.Println(rtrand.SampleN(src, rtrand.StandardFloat64, k))
	case "bytes":
		b := make([]byte, max(k, 0))
		if err := rtrand.TryFill(src, b); err != nil {
			return err
		}
		fmt.Printf("%x\n", b)
	default:
		return errors.Errorf("unknown operation %q", op)
	}
	return nil
}

func parseWeights(s string) ([]float64, error) {
	var weights []float64
	for _, f := range strings.Split(s, ",") {
		w, err := strconv.ParseFloat(strings.TrimSpace(f), 64)
		if err != nil {
			return nil, errors.Wrapf(err, "weight %q", f)
		}
		weights = append(weights, w)
	}
	return weights, nil
}
