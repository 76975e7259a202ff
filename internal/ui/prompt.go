package ui

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"os"
	"strconv"
	"strings"

	"github.com/manifoldco/promptui"
	"golang.org/x/term"
)

// ErrPromptAborted 用户中断输入（Ctrl+C / Ctrl+D / EOF）
var ErrPromptAborted = errors.New("prompt aborted")

// Prompter 交互输入接口
type Prompter interface {
	// Choose 显示选项并返回用户的原始选择（"1", "2", ...）
	Choose(title string, options []string, label string) (string, error)
	// Input 读取一行输入
	Input(label string) (string, error)
}

// NewPrompter 根据标准输入是否为终端选择交互方式
func NewPrompter() Prompter {
	if term.IsTerminal(int(os.Stdin.Fd())) && term.IsTerminal(int(os.Stdout.Fd())) {
		return &TerminalPrompter{}
	}
	return NewLinePrompter(os.Stdin, os.Stdout)
}

// TerminalPrompter 基于promptui的方向键菜单
type TerminalPrompter struct{}

// Choose 使用方向键选择
func (tp *TerminalPrompter) Choose(title string, options []string, label string) (string, error) {
	sel := promptui.Select{
		Label:        title,
		Items:        options,
		HideSelected: true,
	}
	index, _, err := sel.Run()
	if err != nil {
		return "", promptError(err)
	}
	return strconv.Itoa(index + 1), nil
}

// Input 读取一行输入
func (tp *TerminalPrompter) Input(label string) (string, error) {
	prompt := promptui.Prompt{Label: label}
	value, err := prompt.Run()
	if err != nil {
		return "", promptError(err)
	}
	return value, nil
}

func promptError(err error) error {
	if errors.Is(err, promptui.ErrInterrupt) || errors.Is(err, promptui.ErrEOF) || errors.Is(err, io.EOF) {
		return ErrPromptAborted
	}
	return err
}

// LinePrompter 逐行读取的输入方式，用于管道或非终端环境
type LinePrompter struct {
	reader *bufio.Reader
	out    io.Writer
}

// NewLinePrompter 创建逐行输入器
func NewLinePrompter(in io.Reader, out io.Writer) *LinePrompter {
	return &LinePrompter{reader: bufio.NewReader(in), out: out}
}

// Choose 打印选项列表并读取一行选择
func (lp *LinePrompter) Choose(title string, options []string, label string) (string, error) {
	fmt.Fprintln(lp.out, title)
	for _, option := range options {
		fmt.Fprintln(lp.out, option)
	}
	return lp.Input(label)
}

// Input 读取一行输入，EOF且无内容时返回 ErrPromptAborted
func (lp *LinePrompter) Input(label string) (string, error) {
	fmt.Fprintf(lp.out, "%s: ", label)
	line, err := lp.reader.ReadString('\n')
	if err != nil {
		if errors.Is(err, io.EOF) && line != "" {
			return strings.TrimRight(line, "\r\n"), nil
		}
		if errors.Is(err, io.EOF) {
			return "", ErrPromptAborted
		}
		return "", err
	}
	return strings.TrimRight(line, "\r\n"), nil
}
