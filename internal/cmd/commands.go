package cmd

import (
	"fmt"

	"imgproc/core/imageops"
	"imgproc/internal/i18n"
	"imgproc/internal/ui"
	"imgproc/internal/version"

	"github.com/spf13/cobra"
)

func (c *cli) newGrayscaleCommand() *cobra.Command {
	return &cobra.Command{
		Use:     "bw <image>",
		Aliases: []string{"gray", "grayscale"},
		Short:   "convert an image to black and white next to the original",
		Long: `将图片转换为8位灰度图，保存为原图所在目录下的 {name}_bw{ext}。
已存在的同名输出默认被覆盖（grayscale.resolve_collisions 可改为追加序号）。

示例：
  imgproc bw ./photo.jpg
  imgproc gray "~/Pictures/My Photo.PNG"`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp()
			if err != nil {
				return err
			}
			outcome := a.processor.ConvertToBlackWhite(ui.NormalizeInputPath(args[0]))
			return c.report(imageops.OpGrayscale, outcome)
		},
	}
}

func (c *cli) newMoveCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "move <image> <directory>",
		Short: "move an image into a directory without overwriting existing files",
		Long: `将图片移动到已存在的目标文件夹。目标中已有同名文件时依次尝试
name_1.ext, name_2.ext, ... 直到找到空闲的文件名。跨文件系统时先复制、
校验再删除源文件。

示例：
  imgproc move ./photo.jpg ~/Pictures/archive`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp()
			if err != nil {
				return err
			}
			outcome := a.processor.MoveImage(ui.NormalizeInputPath(args[0]), ui.NormalizeInputPath(args[1]))
			return c.report(imageops.OpMove, outcome)
		},
	}
}

func (c *cli) newFormatsCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "formats",
		Short: "list supported image extensions",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp()
			if err != nil {
				return err
			}
			c.display.Formats(a.processor.SupportedFormats())
			return nil
		},
	}
}

func (c *cli) newHistoryCommand() *cobra.Command {
	var limit int
	cmd := &cobra.Command{
		Use:   "history",
		Short: "show recently recorded operations",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.ensureApp()
			if err != nil {
				return err
			}
			if a.store == nil {
				c.display.Info(i18n.T(i18n.TextHistoryDisabled))
				return nil
			}
			records, err := a.store.Recent(limit)
			if err != nil {
				return fmt.Errorf("read history: %w", err)
			}
			stats, err := a.store.Stats()
			if err != nil {
				return fmt.Errorf("read history stats: %w", err)
			}
			c.display.History(records, stats)
			return nil
		},
	}
	cmd.Flags().IntVarP(&limit, "limit", "n", 20, "number of records to show (0 = all)")
	return cmd
}

func newVersionCommand() *cobra.Command {
	return &cobra.Command{
		Use:   "version",
		Short: "print version information",
		Args:  cobra.NoArgs,
		Run: func(cmd *cobra.Command, args []string) {
			cmd.Println(version.GetFullVersionInfo())
		},
	}
}
