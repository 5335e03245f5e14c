// Package main provides localization for the promoreel CLI.
package main

import (
	"github.com/ideamans/go-l10n"
)

func init() {
	// Register Japanese translations for CLI messages.
	l10n.Register("ja", l10n.LexiconMap{
		// Root command
		"Create scrolling promo videos from landing pages": "ランディングページからスクロール紹介動画を作成",

		// Generate command
		"Generate a promo video from an HTML document": "HTMLドキュメントから紹介動画を生成",

		// Batch command
		"Generate videos for every job in a batch file":       "バッチファイルの全ジョブの動画を生成",
		"Jobs to run in parallel (overrides the batch file)":  "並列実行するジョブ数（バッチファイルを上書き）",
		"Running %d jobs with concurrency %d":                 "%d 件のジョブを並列数 %d で実行中",
		"Batch completed":                                     "バッチが完了しました",
		"Video saved to %s (%d frames)":                       "動画を %s に保存しました（%d フレーム）",

		// Output flags
		"Output MP4 file path":                                "出力MP4ファイルパス",
		"Business name shown on the title card and overlay":   "タイトルカードとオーバーレイに表示する店舗・企業名",
		"YAML configuration file":                             "YAML設定ファイル",
		"Write a markdown run summary to this path":           "Markdown形式の実行サマリーをこのパスに出力",

		// Preset and engine flags
		"Preset configuration (desktop or mobile)": "プリセット設定（desktop, mobile）",
		"Rendering engine (chrome or playwright)":  "レンダリングエンジン（chrome, playwright）",

		// Video dimension flags
		"Output video width (default: viewport width)":   "出力動画の幅（デフォルト: ビューポート幅）",
		"Output video height (default: viewport height)": "出力動画の高さ（デフォルト: ビューポート高さ）",
		"Browser viewport width":                         "ブラウザのビューポート幅",
		"Browser viewport height":                        "ブラウザのビューポート高さ",

		// Choreography flags
		"Capture and playback frame rate":                             "キャプチャと再生のフレームレート",
		"Seconds to hold the top of the page before scrolling":        "スクロール開始前にページ上部を保持する秒数",
		"Scroll speed in pixels per second":                           "スクロール速度（ピクセル/秒）",
		"Total video duration in seconds (fixed-duration policy)":     "動画の合計時間（秒、固定時間ポリシー）",
		"End the scroll the moment the page bottom is reached":        "ページ最下部に到達した時点でスクロールを終了",
		"Scroll easing curve (linear, ease-out-cubic, ease-in-out-cubic)": "スクロールのイージング曲線（linear, ease-out-cubic, ease-in-out-cubic）",

		// Encoding flags
		"Quality preset (low, medium, high)":        "品質プリセット（low, medium, high）",
		"Video quality (CRF 0-63, lower is better)": "動画品質（CRF 0-63、低いほど高品質）",
		"Target bitrate in kbps (0 = CRF only)":     "目標ビットレート（kbps、0 = CRFのみ）",

		// Branding flags
		"Skip the intro title card":                           "冒頭のタイトルカードをスキップ",
		"Duration to hold the title card in milliseconds":     "タイトルカードの保持時間（ミリ秒）",
		"Duration to hold the final frame in milliseconds":    "最終フレームの保持時間（ミリ秒）",

		// Browser flags
		"Run the browser in visible mode": "ブラウザを表示モードで実行",
		"Path to Chrome executable (falls back to CHROME_PATH env, then system default)": "Chrome実行ファイルのパス（未指定時はCHROME_PATH環境変数、次にシステムデフォルト）",
		"Override the browser user agent": "ブラウザのユーザーエージェントを上書き",
		"Page load timeout in seconds":    "ページ読み込みのタイムアウト秒数",

		// Debug flags
		"Enable debug output":        "デバッグ出力を有効化",
		"Directory for debug output": "デバッグ出力のディレクトリ",

		// Logging flags
		"Log level (debug, info, warn, error)": "ログレベル（debug, info, warn, error）",
		"Suppress all log output":              "全てのログ出力を抑制",

		// Runtime messages
		"Interrupted, shutting down...":                  "中断されました。シャットダウン中...",
		"Done: %d frames, %.2f s, %d bytes":              "完了: %d フレーム、%.2f 秒、%d バイト",
		"Summary saved to %s":                            "サマリーを %s に保存しました",
		"Captured frames exceed the memory budget, spilling to disk": "キャプチャフレームがメモリ割当を超えるため、ディスクに退避します",
	})
}
