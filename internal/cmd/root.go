package cmd

import (
	"errors"
	"io"
	"os"

	"imgproc/core/imageops"
	"imgproc/internal/ui"
	"imgproc/internal/version"

	"github.com/pterm/pterm"
	"github.com/spf13/cobra"
	"golang.org/x/term"
)

// errReported 已经向用户展示过的失败，只需要非零退出码
var errReported = errors.New("failure already reported")

// cli 命令树共享状态
type cli struct {
	opts     appOptions
	app      *app
	display  *ui.Display
	in       io.Reader
	prompter func() ui.Prompter
}

// newRootCommand 构建完整命令树；in/out 为nil时使用标准输入输出
func newRootCommand(in io.Reader, out io.Writer) (*cobra.Command, *cli) {
	c := &cli{
		display: ui.NewDisplay(out),
		in:      in,
	}
	c.prompter = func() ui.Prompter {
		if c.in != nil {
			return ui.NewLinePrompter(c.in, c.display.Writer())
		}
		return ui.NewPrompter()
	}

	rootCmd := &cobra.Command{
		Use:   "imgproc",
		Short: "imgproc - grayscale conversion and collision-safe moving of images",
		Long: `imgproc 对本地图片执行两种操作：

  - 转换为黑白图片，结果保存在原图旁边 (name_bw.ext)
  - 移动图片到目标文件夹，重名时自动追加 _1, _2 ... 后缀

支持的格式: .png .jpg .jpeg .bmp（不区分大小写）
不带参数运行时进入交互菜单。`,
		Version:       version.GetVersion(),
		Args:          cobra.NoArgs,
		SilenceUsage:  true,
		SilenceErrors: true,
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.runMenu()
		},
	}

	rootCmd.SetOut(c.display.Writer())
	rootCmd.SetErr(c.display.Writer())
	if in != nil {
		rootCmd.SetIn(in)
	}

	// 全局标志
	rootCmd.PersistentFlags().StringVar(&c.opts.configFile, "config", "", "config file (default: $HOME/.imgproc.yaml or ./.imgproc.yaml)")
	rootCmd.PersistentFlags().BoolVarP(&c.opts.verbose, "verbose", "v", false, "verbose (debug) logging")
	rootCmd.PersistentFlags().StringVar(&c.opts.language, "lang", "", "interface language: en, zh, ru")

	rootCmd.AddCommand(
		c.newGrayscaleCommand(),
		c.newMoveCommand(),
		c.newFormatsCommand(),
		c.newHistoryCommand(),
		newVersionCommand(),
		newCompletionCommand(),
	)
	return rootCmd, c
}

// Execute 运行命令行并返回进程退出码
func Execute() int {
	rootCmd, c := newRootCommand(nil, nil)
	defer c.close()

	if err := rootCmd.Execute(); err != nil {
		if !errors.Is(err, errReported) {
			c.display.Error(err.Error())
		}
		return 1
	}
	return 0
}

// ensureApp 首次需要时装配组件
func (c *cli) ensureApp() (*app, error) {
	if c.app != nil {
		return c.app, nil
	}
	a, err := newApp(c.opts)
	if err != nil {
		return nil, err
	}
	c.app = a
	return a, nil
}

func (c *cli) close() {
	if c.app != nil {
		_ = c.app.Close()
		c.app = nil
	}
}

// report 展示操作结果，失败时返回 errReported
func (c *cli) report(op imageops.Operation, outcome imageops.Outcome) error {
	c.display.Outcome(op, outcome)
	if !outcome.Succeeded() {
		return errReported
	}
	return nil
}

// runMenu 交互式菜单
func (c *cli) runMenu() error {
	a, err := c.ensureApp()
	if err != nil {
		return err
	}

	menu := ui.NewMenu(a.processor, c.prompter(), c.display, a.log.Named("menu"))
	err = menu.Run()
	switch {
	case err == nil:
		return nil
	case errors.Is(err, ui.ErrPromptAborted):
		pterm.Println()
		return nil
	case errors.Is(err, ui.ErrInvalidChoice), errors.Is(err, ui.ErrOperationFailed):
		return errReported
	default:
		return err
	}
}

func init() {
	// 输出被重定向时不带颜色
	if !term.IsTerminal(int(os.Stdout.Fd())) {
		pterm.DisableStyling()
	}
}
