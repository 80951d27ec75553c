// Package download fetches album files onto local storage.
//
// # Downloader
//
// Downloader handles one Task (source URL, destination path):
//
//  1. Create the destination exclusively; if it exists, skip without a request
//  2. Fetch the source
//  3. Non-2xx status or unresolvable host: remove the file, skip
//  4. Any other failure: remove the file, return a *FatalError
//  5. Otherwise stream the body straight to disk
//
// # Scheduler
//
// Scheduler runs a list of tasks in waves of at most N. Each wave runs
// concurrently and must settle completely before the next one starts:
//
//	scheduler := download.NewScheduler(download.NewDownloader(client, logger), logger)
//	summary, err := scheduler.DownloadAll(ctx, tasks, 5)
//	var fatal *download.FatalError
//	if errors.As(err, &fatal) {
//	    log.Fatalf("gave up at %s: %v", fatal.Task.SourceURL, fatal.Err)
//	}
//
// A fatal error lets the rest of its wave finish, then stops the batch.
// There are no retries.
//
// # Manager
//
// Manager runs a whole album:
//
//  1. Fetch the album page and extract the track list
//  2. Apply the track selection and compute destination paths
//  3. Download tracks through the Scheduler
//  4. Download the cover art
//  5. Tag completed tracks with ID3 metadata and the cover
//  6. Generate a playlist (optional)
//
//	manager := download.NewManager(settings, func(event download.ProgressEvent) {
//	    fmt.Println(event.Message)
//	})
//	if err := manager.Initialize(ctx, albumURL); err != nil {
//	    log.Fatal(err)
//	}
//	summary, err := manager.StartDownloads(ctx)
package download
