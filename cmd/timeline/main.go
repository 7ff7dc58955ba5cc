// Package main 打印时间轴在一组进度采样点上的动画状态，用于调整阶段边界
//
// Usage:
//
//	go run ./cmd/timeline [--config data/scene.yaml] [--step 0.05]
//	go run ./cmd/timeline --at 0.6
package main

import (
	"flag"
	"fmt"
	"os"
	"text/tabwriter"

	"github.com/decker502/monolith/pkg/config"
	"github.com/decker502/monolith/pkg/timeline"
)

var (
	configPath = flag.String("config", "", "场景配置文件（为空使用内置默认值）")
	step       = flag.Float64("step", 0.05, "采样步长")
	at         = flag.Float64("at", -1, "只打印单个进度点的完整状态")
)

func main() {
	flag.Parse()

	cfg := config.DefaultSceneConfig()
	if *configPath != "" {
		loaded, err := config.LoadSceneConfig(*configPath)
		if err != nil {
			fmt.Fprintf(os.Stderr, "Error: %v\n", err)
			os.Exit(1)
		}
		cfg = loaded
	}

	tl, err := timeline.NewDefault(cfg)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}

	if *at >= 0 {
		printState(tl.Evaluate(*at))
		return
	}
	if *step <= 0 || *step > 1 {
		fmt.Fprintf(os.Stderr, "Error: --step must be within (0,1], got %v\n", *step)
		os.Exit(2)
	}

	printPhases(tl)
	printTable(tl, *step)
}

func printPhases(tl *timeline.Timeline) {
	fmt.Println("=== Phases ===")
	for _, ph := range tl.Phases() {
		fmt.Printf("  %-14s [%.3f, %.3f)\n", ph.ID, ph.Start, ph.End)
	}
	fmt.Println()
}

func printTable(tl *timeline.Timeline, step float64) {
	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	fmt.Fprintln(w, "p\tphase\tflags\tcamZ\tmono\tslit\tglyph\tportal\ttunnel\tabout")

	// 用整数计数避免浮点累加误差
	n := int(1/step + 0.5)
	for i := 0; i <= n; i++ {
		p := float64(i) * step
		if p > 1 {
			p = 1
		}
		st := tl.Evaluate(p)
		fmt.Fprintf(w, "%.3f\t%s\t%s\t%.0f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\t%.2f\n",
			st.Progress, st.Phase, flags(st), st.Camera.Z(),
			st.MonolithOpacity, st.SlitOpacity,
			st.GlyphReveal*st.GlyphFade, st.Portal.Reveal,
			st.TunnelOpacity, st.AboutOpacity)
	}
	w.Flush()
}

// flags 把激活标志压缩成固定宽度的字符串：D G P T X A
func flags(st timeline.AnimationState) string {
	b := []byte("------")
	set := func(i int, on bool, c byte) {
		if on {
			b[i] = c
		}
	}
	set(0, st.CameraDolly, 'D')
	set(1, st.GlyphActive, 'G')
	set(2, st.PortalActive, 'P')
	set(3, st.TunnelActive, 'T')
	set(4, st.Dispersing, 'X')
	set(5, st.AboutActive, 'A')
	return string(b)
}

func printState(st timeline.AnimationState) {
	fmt.Printf("progress      %.4f (%s)\n", st.Progress, st.Phase)
	fmt.Printf("flags         %s\n", flags(st))
	fmt.Printf("camera        (%.1f, %.1f, %.1f)\n", st.Camera.X(), st.Camera.Y(), st.Camera.Z())
	fmt.Printf("stage         visible=%v backdrop=%.3f monolith=%.3f scale=%.3f slit=%.3f\n",
		st.StageVisible, st.BackdropOpacity, st.MonolithOpacity, st.MonolithScale, st.SlitOpacity)
	fmt.Printf("glyphs        phase=%v reveal=%.3f fade=%.3f float=%.3f fly=%.3f\n",
		st.GlyphPhase, st.GlyphReveal, st.GlyphFade, st.FloatProgress, st.FlyProgress)
	fmt.Printf("portal        %+v\n", st.Portal)
	fmt.Printf("tunnel        %.3f\n", st.TunnelOpacity)
	fmt.Printf("about         opacity=%.3f z=%.1f\n", st.AboutOpacity, st.AboutZ)
}
