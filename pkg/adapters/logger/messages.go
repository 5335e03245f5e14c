package logger

import "github.com/ideamans/go-l10n"

func init() {
	l10n.Register("ja", l10n.LexiconMap{
		// Orchestration level messages (info)
		"Generating video for %s...":      "%s の動画を生成中...",
		"Output saved to %s":              "出力を %s に保存しました",
		"Pipeline completed successfully": "パイプラインが正常に完了しました",
		"Interrupted, shutting down...":   "中断されました。シャットダウン中...",
		"Generation cancelled":            "生成がキャンセルされました",

		// Capture stage (browser component)
		"Launching browser in headless mode": "ヘッドレスモードでブラウザを起動中",
		"Launching browser in visible mode":  "表示モードでブラウザを起動中",
		"Loading document (%d bytes)":        "ドキュメントを読み込み中 (%d バイト)",
		"Page measured: %d px tall":          "ページ計測完了: 高さ %d px",
		"Capture plan: %d pause + %d scroll frames at %d fps, max scroll %d px": "キャプチャプラン: 停止 %d + スクロール %d フレーム (%d fps), 最大スクロール %d px",
		"Captured %d frames in %s, final offset %d px":                          "%d フレームを %s でキャプチャしました (最終オフセット %d px)",
		"Browser closed": "ブラウザを閉じました",

		// Title card stage
		"Generating title card":     "タイトルカードを生成中",
		"Title card generated: %dx%d": "タイトルカード生成完了: %dx%d",

		// Encode stage
		"Encoding %d frames at %d fps":   "%d フレームを %d fps でエンコード中",
		"Encoding progress: %d%%":        "エンコード進捗: %d%%",
		"Video encoded: %d bytes, %d ms": "動画エンコード完了: %d バイト, %d ms",

		// Warnings
		"Low memory: %d MB available, frames spill to disk": "メモリ不足: 空き %d MB。フレームをディスクに退避します",

		// Errors
		"Failed to capture page: %s":  "ページのキャプチャに失敗しました: %s",
		"Failed to encode video: %s":  "動画のエンコードに失敗しました: %s",
		"Failed to write output: %s":  "出力の書き込みに失敗しました: %s",
		"Failed to generate %s: %s":   "%s の生成に失敗しました: %s",
	})
}
