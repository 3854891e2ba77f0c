package main

import (
	"bufio"
	"context"
	"encoding/json"
	"errors"
	"flag"
	"fmt"
	"io"
	"log"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
	analysis "github.com/zhouzirui/moodlens/backend/internal/analysis/emotion"
	"github.com/zhouzirui/moodlens/backend/internal/config"
	analysisModel "github.com/zhouzirui/moodlens/backend/internal/model/analysis"
	emotionservice "github.com/zhouzirui/moodlens/backend/internal/service/emotion"
)

func main() {
	log.SetFlags(log.LstdFlags | log.Lmicroseconds)

	opts, err := parseOptions(os.Args[1:], os.Stderr)
	if errors.Is(err, flag.ErrHelp) {
		return
	}
	if err != nil {
		os.Exit(2)
	}

	if err := godotenv.Load(); err != nil {
		log.Printf("[WARN] 无法加载 .env，改用系统环境变量: %v", err)
	}

	cfg, err := config.Load()
	if err != nil {
		log.Fatalf("配置加载失败: %v", err)
	}

	ctx := context.Background()
	backend, err := emotionservice.NewBackend(ctx, cfg.Analyzer, cfg.AI)
	if err != nil {
		log.Printf("[WARN] %s 后端不可用，改用关键词引擎: %v", cfg.Analyzer.Backend, err)
		backend = nil
	}
	svc := emotionservice.NewService(backend, emotionservice.Config{Timeout: cfg.Analyzer.BackendTimeout})

	if err := run(ctx, svc, opts, os.Stdin, os.Stdout); err != nil {
		log.Fatalf("运行失败: %v", err)
	}
}

type options struct {
	text    string
	scores  bool
	asJSON  bool
	timeout time.Duration
}

// parseOptions 解析命令行参数，不依赖环境配置，-h 总能正常输出帮助。
func parseOptions(args []string, errOut io.Writer) (options, error) {
	var opts options
	fs := flag.NewFlagSet("moodcheck", flag.ContinueOnError)
	fs.SetOutput(errOut)
	fs.StringVar(&opts.text, "text", "", "待分析文本，留空则逐行读取标准输入")
	fs.BoolVar(&opts.scores, "scores", false, "同时输出各情绪的关键词得分")
	fs.BoolVar(&opts.asJSON, "json", false, "以 JSON 输出结果")
	fs.DurationVar(&opts.timeout, "timeout", 10*time.Second, "单条文本的分析超时时间")

	if err := fs.Parse(args); err != nil {
		return options{}, err
	}
	return opts, nil
}

func run(ctx context.Context, svc *emotionservice.Service, opts options, in io.Reader, out io.Writer) error {
	p := printer{out: out, scores: opts.scores, asJSON: opts.asJSON}

	if opts.text != "" {
		return p.print(analyze(ctx, svc, opts.text, opts.timeout))
	}

	scanner := bufio.NewScanner(in)
	for scanner.Scan() {
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}
		if err := p.print(analyze(ctx, svc, line, opts.timeout)); err != nil {
			return err
		}
	}
	if err := scanner.Err(); err != nil {
		return fmt.Errorf("读取标准输入失败: %w", err)
	}
	return nil
}

func analyze(ctx context.Context, svc *emotionservice.Service, text string, timeout time.Duration) analysisModel.AnalyzeResponse {
	ctx, cancel := context.WithTimeout(ctx, timeout)
	defer cancel()
	return analysisModel.NewAnalyzeResponse(text, svc.Analyze(ctx, text))
}

type printer struct {
	out    io.Writer
	scores bool
	asJSON bool
}

func (p printer) print(resp analysisModel.AnalyzeResponse) error {
	if !p.scores {
		resp.Scores = nil
	}

	if p.asJSON {
		return json.NewEncoder(p.out).Encode(resp)
	}

	if _, err := fmt.Fprintf(p.out, "%s %-8s %.2f  [%s]  %s\n",
		resp.Emoji, resp.Emotion, resp.Confidence, resp.Source, resp.Text); err != nil {
		return err
	}
	if !p.scores {
		return nil
	}
	for _, label := range analysis.Labels() {
		if _, err := fmt.Fprintf(p.out, "    %-8s %.2f\n", label, resp.Scores[label]); err != nil {
			return err
		}
	}
	return nil
}
