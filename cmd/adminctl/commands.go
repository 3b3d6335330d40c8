package main

import (
	"bufio"
	"errors"
	"fmt"
	"mime"
	"os"
	"path/filepath"
	"strings"

	"github.com/spf13/cobra"

	"github.com/pribylovaa/events-admin-console/internal/models"
)

func (c *cli) loginCmd() *cobra.Command {
	var (
		login         string
		password      string
		passwordStdin bool
	)

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Sign in and store the session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if passwordStdin {
				line, err := bufio.NewReader(cmd.InOrStdin()).ReadString('\n')
				if err != nil && line == "" {
					return fmt.Errorf("read password from stdin: %w", err)
				}
				password = strings.TrimRight(line, "\r\n")
			}
			if password == "" {
				password = os.Getenv("ADMINCTL_PASSWORD")
			}

			s, err := c.app.API.Login(cmd.Context(), login, password)
			if err != nil {
				return err
			}
			return c.print(s)
		},
	}

	cmd.Flags().StringVarP(&login, "login", "u", "", "Admin login (e-mail)")
	cmd.Flags().StringVarP(&password, "password", "p", "", "Password (prefer --password-stdin or ADMINCTL_PASSWORD)")
	cmd.Flags().BoolVar(&passwordStdin, "password-stdin", false, "Read password from stdin")
	_ = cmd.MarkFlagRequired("login")

	return cmd
}

func (c *cli) logoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Revoke and forget the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return c.app.API.Logout(cmd.Context())
		},
	}
}

func (c *cli) sessionCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "session",
		Short: "Show the stored session",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.app.API.Session(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(s)
		},
	}
}

// listFlags — общие флаги табличных команд.
func listFlags(cmd *cobra.Command, q *models.ListQuery) {
	cmd.Flags().IntVar(&q.Page, "page", 0, "Page number (from 0)")
	cmd.Flags().IntVar(&q.Size, "size", models.DefaultPageSize, "Page size")
	cmd.Flags().StringVar(&q.Status, "status", "", "Filter by status")
	cmd.Flags().StringVar(&q.Search, "search", "", "Full-text filter")
}

func (c *cli) eventsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "events", Short: "Moderate events"}

	var q models.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List events",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.app.API.ListEvents(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.print(page)
		},
	}
	listFlags(list, &q)

	get := &cobra.Command{
		Use:   "get ID",
		Short: "Show one event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := c.app.API.GetEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(ev)
		},
	}

	approve := &cobra.Command{
		Use:   "approve ID",
		Short: "Approve a pending event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := c.app.API.ApproveEvent(cmd.Context(), args[0])
			if err != nil {
				return err
			}
			return c.print(ev)
		},
	}

	var reason string
	reject := &cobra.Command{
		Use:   "reject ID --reason TEXT",
		Short: "Reject a pending event",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ev, err := c.app.API.RejectEvent(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			return c.print(ev)
		},
	}
	reject.Flags().StringVar(&reason, "reason", "", "Reason shown to the organizer")
	_ = reject.MarkFlagRequired("reason")

	cmd.AddCommand(list, get, approve, reject)
	return cmd
}

func (c *cli) participantsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "participants", Short: "Manage participants"}

	var q models.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List participants",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.app.API.ListParticipants(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.print(page)
		},
	}
	listFlags(list, &q)

	setStatus := func(use, short string, status models.ParticipantStatus) *cobra.Command {
		return &cobra.Command{
			Use:   use + " ID",
			Short: short,
			Args:  cobra.ExactArgs(1),
			RunE: func(cmd *cobra.Command, args []string) error {
				p, err := c.app.API.SetParticipantStatus(cmd.Context(), args[0], status)
				if err != nil {
					return err
				}
				return c.print(p)
			},
		}
	}

	cmd.AddCommand(
		list,
		setStatus("block", "Block a participant", models.ParticipantBlocked),
		setStatus("unblock", "Unblock a participant", models.ParticipantActive),
	)
	return cmd
}

func (c *cli) productsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "products", Short: "Manage the credit store"}

	var q models.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List products",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.app.API.ListProducts(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.print(page)
		},
	}
	listFlags(list, &q)

	var (
		name, description, imagePath string
		price                        int64
		stock                        int
		onSale                       bool
	)
	create := &cobra.Command{
		Use:   "create --name NAME --price CREDITS",
		Short: "Create a product",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			in := models.ProductInput{Name: &name, Price: &price}
			if cmd.Flags().Changed("description") {
				in.Description = &description
			}
			if cmd.Flags().Changed("stock") {
				in.Stock = &stock
			}
			if cmd.Flags().Changed("on-sale") {
				in.OnSale = &onSale
			}

			img, err := readImage(imagePath)
			if err != nil {
				return err
			}

			p, err := c.app.API.CreateProduct(cmd.Context(), in, img)
			if err != nil {
				return err
			}
			return c.print(p)
		},
	}
	create.Flags().StringVar(&name, "name", "", "Product name")
	create.Flags().Int64Var(&price, "price", 0, "Price in credits")
	create.Flags().StringVar(&description, "description", "", "Description")
	create.Flags().IntVar(&stock, "stock", 0, "Items in stock")
	create.Flags().BoolVar(&onSale, "on-sale", false, "Put on sale immediately")
	create.Flags().StringVar(&imagePath, "image", "", "Path to product image")
	_ = create.MarkFlagRequired("name")
	_ = create.MarkFlagRequired("price")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a product",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.API.DeleteProduct(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, create, del)
	return cmd
}

func readImage(path string) (*models.ProductImage, error) {
	if path == "" {
		return nil, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read image: %w", err)
	}
	if len(data) == 0 {
		return nil, errors.New("read image: file is empty")
	}

	return &models.ProductImage{
		Filename:    filepath.Base(path),
		ContentType: mime.TypeByExtension(filepath.Ext(path)),
		Data:        data,
	}, nil
}

func (c *cli) postsCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "posts", Short: "Moderate posts"}

	var q models.ListQuery
	list := &cobra.Command{
		Use:   "list",
		Short: "List posts",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			page, err := c.app.API.ListPosts(cmd.Context(), q)
			if err != nil {
				return err
			}
			return c.print(page)
		},
	}
	listFlags(list, &q)

	var reason string
	hide := &cobra.Command{
		Use:   "hide ID",
		Short: "Hide a post from the feed",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			p, err := c.app.API.HidePost(cmd.Context(), args[0], reason)
			if err != nil {
				return err
			}
			return c.print(p)
		},
	}
	hide.Flags().StringVar(&reason, "reason", "", "Moderation note")

	del := &cobra.Command{
		Use:   "delete ID",
		Short: "Delete a post",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			return c.app.API.DeletePost(cmd.Context(), args[0])
		},
	}

	cmd.AddCommand(list, hide, del)
	return cmd
}

func (c *cli) dashboardCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "dashboard",
		Short: "Show dashboard summary",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			s, err := c.app.API.Dashboard(cmd.Context())
			if err != nil {
				return err
			}
			return c.print(s)
		},
	}
}
