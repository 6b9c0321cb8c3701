package cli

import (
	"bufio"
	"context"
	"fmt"
	"strings"
)

// printlnFn is a test seam for user-facing output.
var printlnFn = fmt.Println

// execIface is the minimal command surface the REPL needs. The real App
// satisfies it; tests provide a lightweight stub.
type execIface interface {
	isLoggedIn() bool
	Login(ctx context.Context) error
	Signup(ctx context.Context) error
	Logout(ctx context.Context) error
	Blogs(ctx context.Context) error
	MyBlogs(ctx context.Context) error
	CreateBlog(ctx context.Context) error
	EditBlog(ctx context.Context, id string) error
	DeleteBlog(ctx context.Context, id string) error
}

// runREPL reads a line from the scanner, parses the first token as the
// command, and dispatches to methods on a. Unknown commands are reported
// back. The loop exits on EOF or on "exit"/"quit".
//
// Commands map one-to-one onto the routes of the web frontend:
//
//	Not logged in:
//	  - login, signup
//	Logged in:
//	  - blogs          -- filtered listing (/blogs)
//	  - myblogs        -- own posts (/my-blogs)
//	  - create         -- new post (/create-blog)
//	  - edit <id>      -- edit a post (/edit-blog/:id)
//	  - delete <id>    -- remove a post
//	  - logout
//
// Errors returned by handlers are ignored here; handlers report their own
// failures. That keeps the loop resilient and focused on I/O.
func runREPL(ctx context.Context, a execIface, statusFn func() string, scanner *bufio.Scanner) {
	for {
		printlnFn(fmt.Sprintf("blogbox %s> ", statusFn()))
		if !scanner.Scan() {
			return
		}
		line := scanner.Text()
		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := parts[0]
		args := parts[1:]

		switch cmd {
		case "help":
			if a.isLoggedIn() {
				printlnFn("Available commands: blogs, myblogs, create, edit <id>, delete <id>, logout, exit")
			} else {
				printlnFn("Available commands: login, signup, exit")
			}

		case "login":
			_ = a.Login(ctx)

		case "signup":
			_ = a.Signup(ctx)

		case "logout":
			_ = a.Logout(ctx)

		case "blogs":
			_ = a.Blogs(ctx)

		case "myblogs":
			_ = a.MyBlogs(ctx)

		case "create":
			_ = a.CreateBlog(ctx)

		case "edit":
			if len(args) == 0 {
				printlnFn("Usage: edit <id>")
				continue
			}
			_ = a.EditBlog(ctx, args[0])

		case "delete":
			if len(args) == 0 {
				printlnFn("Usage: delete <id>")
				continue
			}
			_ = a.DeleteBlog(ctx, args[0])

		case "exit", "quit":
			printlnFn("Bye!")
			return

		default:
			printlnFn("Unknown command:", cmd)
		}
	}
}
